// Package ai - critics.go
// CriticService turns LLM completions into game-facing verdicts.
// Every call degrades to a fixed fallback so the kitchen never stalls
// on a dead provider.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
)

// Critic is one member of the tasting jury.
type Critic struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Persona string `json:"persona"`
	Request string `json:"request,omitempty"`
	Avatar  string `json:"avatar"`
}

// Review is one critic's verdict on a submitted dish.
type Review struct {
	CriticName string  `json:"criticName"`
	Persona    string  `json:"persona"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// Step is one line of the generated recipe.
type Step struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DishResult is the full judgment for a submission.
type DishResult struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Reviews     []Review `json:"reviews"`
	TotalScore  float64  `json:"totalScore"`
	RewardGold  int      `json:"rewardGold"`
	RewardXP    int      `json:"rewardXp"`
	Steps       []Step   `json:"steps"`
}

// CustomAnalysis classifies a player-invented ingredient.
type CustomAnalysis struct {
	Emoji    string `json:"emoji"`
	Tier     int    `json:"tier"`
	Category string `json:"category"`
}

const criticCallTimeout = 30 * time.Second

// CriticService is the single gateway from the engine to the LLM.
type CriticService struct {
	provider LLMProvider
	logger   *logger.Logger
}

// NewCriticService creates the judging gateway.
func NewCriticService(provider LLMProvider, log *logger.Logger) *CriticService {
	return &CriticService{provider: provider, logger: log}
}

// GenerateCritics produces the jury for a round. A provider failure
// yields the stock trio so the round can always start.
func (cs *CriticService) GenerateCritics(ctx context.Context, level int) []Critic {
	ctx, cancel := context.WithTimeout(ctx, criticCallTimeout)
	defer cancel()

	req := CompletionRequest{
		Messages: []Message{
			{Role: "user", Content: BuildCriticsPrompt(level)},
		},
		MaxTokens:   600,
		Temperature: 0.9,
		JSONMode:    true,
	}

	resp, err := cs.complete(ctx, req, "critics")
	if err != nil {
		return fallbackCritics()
	}

	var critics []Critic
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &critics); err != nil || len(critics) == 0 {
		cs.logger.Warn("Critic generation returned unparseable JSON, using fallback jury")
		return fallbackCritics()
	}
	return critics
}

// EvaluateDish asks the jury to judge the plated ingredients. On any
// failure the punitive fallback verdict is returned.
func (cs *CriticService) EvaluateDish(ctx context.Context, ingredients []string, critics []Critic, ingredientsCost int) DishResult {
	ctx, cancel := context.WithTimeout(ctx, criticCallTimeout)
	defer cancel()

	req := CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: ChefSystemPrompt},
			{Role: "user", Content: BuildEvaluationPrompt(ingredients, critics, ingredientsCost)},
		},
		MaxTokens:   1500,
		Temperature: 0.8,
		JSONMode:    true,
	}

	resp, err := cs.complete(ctx, req, "evaluation")
	if err != nil {
		return fallbackDishResult()
	}

	var result DishResult
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &result); err != nil {
		cs.logger.Error("Failed to parse dish evaluation: " + err.Error())
		cs.logger.Event("LLM_RAW", "KITCHEN", resp.Content)
		return fallbackDishResult()
	}

	// Refusals come back named per the safety contract or empty.
	if result.Name == "Я не буду це готувати" || result.Name == "" {
		return DishResult{
			Name:        "Відмова Шефа",
			Description: "Я не думаю, що це добра ідея відповідати на такий запит.",
			Reviews:     []Review{},
			Steps:       []Step{},
		}
	}

	if err := ValidateDishResult(&result); err != nil {
		cs.logger.Error("Dish evaluation failed validation: " + err.Error())
		return fallbackDishResult()
	}
	if len(result.Steps) == 0 {
		result.Steps = []Step{{Action: "Подача", Description: "Ви виклали інгредієнти на тарілку", Icon: "🍽️"}}
	}
	return result
}

// AnalyzeCustomIngredient classifies a player-invented ingredient
// name into emoji, tier and category.
func (cs *CriticService) AnalyzeCustomIngredient(ctx context.Context, name string) CustomAnalysis {
	ctx, cancel := context.WithTimeout(ctx, criticCallTimeout)
	defer cancel()

	req := CompletionRequest{
		Messages: []Message{
			{Role: "user", Content: BuildCustomAnalysisPrompt(name)},
		},
		MaxTokens:   150,
		Temperature: 0.5,
		JSONMode:    true,
	}

	fallback := CustomAnalysis{Emoji: "❓", Tier: 1, Category: "weird"}

	resp, err := cs.complete(ctx, req, "custom analysis")
	if err != nil {
		return fallback
	}

	var analysis CustomAnalysis
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &analysis); err != nil {
		cs.logger.Warn("Custom ingredient analysis unparseable, using fallback")
		return fallback
	}
	if analysis.Emoji == "" {
		analysis.Emoji = "📦"
	}
	if analysis.Tier < 1 || analysis.Tier > 5 {
		analysis.Tier = 1
	}
	if analysis.Category == "" {
		analysis.Category = "weird"
	}
	return analysis
}

// ReplyToExcuse lets a critic answer the player's excuse in character.
func (cs *CriticService) ReplyToExcuse(ctx context.Context, criticName, persona, dishName, excuse, originalReview string) string {
	ctx, cancel := context.WithTimeout(ctx, criticCallTimeout)
	defer cancel()

	req := CompletionRequest{
		Messages: []Message{
			{Role: "user", Content: BuildExcusePrompt(criticName, persona, dishName, excuse, originalReview)},
		},
		MaxTokens:   100,
		Temperature: 0.9,
	}

	resp, err := cs.complete(ctx, req, "excuse reply")
	if err != nil {
		return "Я вас не чую."
	}
	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		return "Хм..."
	}
	return reply
}

func (cs *CriticService) complete(ctx context.Context, req CompletionRequest, op string) (*CompletionResponse, error) {
	if cs.provider == nil || !cs.provider.IsAvailable() {
		cs.logger.Warn(fmt.Sprintf("LLM provider unavailable for %s, using fallback", op))
		return nil, fmt.Errorf("provider unavailable")
	}
	resp, err := cs.provider.Complete(ctx, req)
	if err != nil {
		cs.logger.Error(fmt.Sprintf("LLM %s call failed: %v", op, err))
		return nil, err
	}
	cs.logger.Info(fmt.Sprintf("LLM %s: %d tokens in %dms via %s",
		op, resp.TotalTokens, resp.Latency.Milliseconds(), cs.provider.Name()))
	return resp, nil
}

// extractJSON strips markdown fences some models wrap around JSON.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
	}
	return strings.TrimSpace(content)
}

func fallbackCritics() []Critic {
	return []Critic{
		{ID: "c1", Name: "Пан Василь", Persona: "Гурман з села", Request: "Борщ", Avatar: "👨‍🌾"},
		{ID: "c2", Name: "Леді Гага", Persona: "Ексцентрична зірка", Request: "Щось дивне", Avatar: "👩‍🎤"},
		{ID: "c3", Name: "Орк Гриша", Persona: "Любить м'ясо", Request: "Смажене м'ясо", Avatar: "👹"},
	}
}

func fallbackDishResult() DishResult {
	return DishResult{
		Name:        "Кулінарний Провал",
		Description: "Щось пішло не так під час оцінювання...",
		Reviews:     []Review{},
		TotalScore:  1.0,
		RewardGold:  -10,
		RewardXP:    -20,
		Steps:       []Step{},
	}
}
