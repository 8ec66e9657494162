package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
)

// scriptedProvider replays canned content or a canned error.
type scriptedProvider struct {
	content string
	err     error
	down    bool
}

func (p *scriptedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &CompletionResponse{Content: p.content, Model: "scripted", TotalTokens: 10}, nil
}

func (p *scriptedProvider) Name() string      { return "scripted" }
func (p *scriptedProvider) IsAvailable() bool { return !p.down }

func newService(p LLMProvider) *CriticService {
	return NewCriticService(p, logger.NewLogger())
}

func TestGenerateCriticsParsesJury(t *testing.T) {
	content := "```json\n" + `[
		{"id": "c1", "name": "Баба Параска", "persona": "Сувора", "request": "Вареники", "avatar": "👵"},
		{"id": "c2", "name": "Граф Шоколад", "persona": "Солодкоїжка", "avatar": "🎩"}
	]` + "\n```"
	cs := newService(&scriptedProvider{content: content})

	critics := cs.GenerateCritics(context.Background(), 3)
	if len(critics) != 2 {
		t.Fatalf("Expected 2 critics, got %d", len(critics))
	}
	if critics[0].Name != "Баба Параска" || critics[0].Request != "Вареники" {
		t.Errorf("Unexpected first critic: %+v", critics[0])
	}
}

func TestGenerateCriticsFallsBackOnFailure(t *testing.T) {
	for name, provider := range map[string]LLMProvider{
		"provider error": &scriptedProvider{err: errors.New("boom")},
		"provider down":  &scriptedProvider{down: true},
		"garbage output": &scriptedProvider{content: "не JSON"},
		"empty array":    &scriptedProvider{content: "[]"},
	} {
		cs := newService(provider)
		critics := cs.GenerateCritics(context.Background(), 1)
		if len(critics) != 3 {
			t.Errorf("%s: expected the stock trio, got %d critics", name, len(critics))
			continue
		}
		if critics[0].Name != "Пан Василь" {
			t.Errorf("%s: unexpected fallback jury: %+v", name, critics)
		}
	}
}

func TestEvaluateDishParsesVerdict(t *testing.T) {
	content := `{
		"name": "Смажена Симфонія",
		"description": "Хрустка і золотиста",
		"reviews": [{"criticName": "Пан Василь", "persona": "Гурман", "text": "Чудово!", "score": 8.0}],
		"totalScore": 8.0,
		"rewardGold": 45,
		"rewardXp": 90,
		"steps": [{"action": "Смаження", "description": "На середньому вогні", "icon": "🍳"}]
	}`
	cs := newService(&scriptedProvider{content: content})

	result := cs.EvaluateDish(context.Background(), []string{"Яєчня (Стан: fried)"}, fallbackCritics(), 10)
	if result.Name != "Смажена Симфонія" || result.RewardGold != 45 || result.RewardXP != 90 {
		t.Errorf("Unexpected verdict: %+v", result)
	}
	if len(result.Steps) != 1 {
		t.Errorf("Expected the parsed recipe kept, got %d steps", len(result.Steps))
	}
}

func TestEvaluateDishAddsDefaultStep(t *testing.T) {
	content := `{"name": "Проста Страва", "description": "...", "reviews": [], "totalScore": 5.0, "rewardGold": 5, "rewardXp": 10, "steps": []}`
	cs := newService(&scriptedProvider{content: content})

	result := cs.EvaluateDish(context.Background(), []string{"Хліб (Стан: raw)"}, nil, 12)
	if len(result.Steps) != 1 || result.Steps[0].Action != "Подача" {
		t.Errorf("Expected the default plating step, got %+v", result.Steps)
	}
}

func TestEvaluateDishHandlesRefusal(t *testing.T) {
	content := `{"name": "Я не буду це готувати", "description": "", "totalScore": 0}`
	cs := newService(&scriptedProvider{content: content})

	result := cs.EvaluateDish(context.Background(), []string{"щось заборонене"}, nil, 0)
	if result.Name != "Відмова Шефа" {
		t.Errorf("Expected the refusal verdict, got %q", result.Name)
	}
	if result.RewardGold != 0 || result.RewardXP != 0 {
		t.Errorf("Expected a refusal to carry no rewards, got %+v", result)
	}
}

func TestEvaluateDishFallsBackOnBadPayloads(t *testing.T) {
	for name, content := range map[string]string{
		"garbage":            "оцінка: п'ять",
		"score out of range": `{"name": "X", "totalScore": 55.0}`,
		"anonymous review":   `{"name": "X", "totalScore": 5.0, "reviews": [{"text": "хто це?"}]}`,
	} {
		cs := newService(&scriptedProvider{content: content})
		result := cs.EvaluateDish(context.Background(), []string{"щось"}, nil, 10)
		if result.Name != "Кулінарний Провал" {
			t.Errorf("%s: expected the punitive fallback, got %q", name, result.Name)
			continue
		}
		if result.TotalScore != 1.0 || result.RewardGold != -10 || result.RewardXP != -20 {
			t.Errorf("%s: unexpected fallback rewards: %+v", name, result)
		}
	}
}

func TestAnalyzeCustomIngredient(t *testing.T) {
	cs := newService(&scriptedProvider{content: `{"emoji": "🦄", "tier": 5, "category": "magic"}`})
	analysis := cs.AnalyzeCustomIngredient(context.Background(), "Сльози Єдинорога")
	if analysis.Emoji != "🦄" || analysis.Tier != 5 || analysis.Category != "magic" {
		t.Errorf("Unexpected analysis: %+v", analysis)
	}
}

func TestAnalyzeCustomIngredientSanitizes(t *testing.T) {
	cs := newService(&scriptedProvider{content: `{"emoji": "", "tier": 9, "category": ""}`})
	analysis := cs.AnalyzeCustomIngredient(context.Background(), "Щось")
	if analysis.Emoji != "📦" {
		t.Errorf("Expected the default emoji, got %q", analysis.Emoji)
	}
	if analysis.Tier != 1 {
		t.Errorf("Expected an out-of-range tier reset to 1, got %d", analysis.Tier)
	}
	if analysis.Category != "weird" {
		t.Errorf("Expected the default category, got %q", analysis.Category)
	}
}

func TestAnalyzeCustomIngredientFallback(t *testing.T) {
	cs := newService(&scriptedProvider{err: errors.New("boom")})
	analysis := cs.AnalyzeCustomIngredient(context.Background(), "Щось")
	if analysis.Emoji != "❓" || analysis.Tier != 1 || analysis.Category != "weird" {
		t.Errorf("Unexpected failure fallback: %+v", analysis)
	}
}

func TestReplyToExcuse(t *testing.T) {
	cs := newService(&scriptedProvider{content: "  Сметана не виправдання!  "})
	reply := cs.ReplyToExcuse(context.Background(), "Пан Василь", "Гурман", "Борщ", "Сметана скінчилась", "Без сметани?")
	if reply != "Сметана не виправдання!" {
		t.Errorf("Expected a trimmed reply, got %q", reply)
	}

	cs = newService(&scriptedProvider{content: "   "})
	if reply := cs.ReplyToExcuse(context.Background(), "A", "B", "C", "D", "E"); reply != "Хм..." {
		t.Errorf("Expected the empty-reply filler, got %q", reply)
	}

	cs = newService(&scriptedProvider{err: errors.New("boom")})
	if reply := cs.ReplyToExcuse(context.Background(), "A", "B", "C", "D", "E"); reply != "Я вас не чую." {
		t.Errorf("Expected the deaf-critic fallback, got %q", reply)
	}
}

func TestExtractJSONStripsFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n[1,2]\n```":                `[1,2]`,
		"  \n```json\n{\"a\":1}\n```\n ": `{"a":1}`,
	}
	for in, want := range cases {
		if got := extractJSON(in); got != want {
			t.Errorf("extractJSON(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateDishResult(t *testing.T) {
	ok := DishResult{Name: "Борщ", TotalScore: 7.5, Reviews: []Review{{CriticName: "Пан Василь"}}}
	if err := ValidateDishResult(&ok); err != nil {
		t.Errorf("Expected a valid result, got %v", err)
	}

	bad := []DishResult{
		{Name: "", TotalScore: 5},
		{Name: "X", TotalScore: -1},
		{Name: "X", TotalScore: 11},
		{Name: "X", TotalScore: 5, Reviews: []Review{{Text: "анонім"}}},
	}
	for i, res := range bad {
		r := res
		if err := ValidateDishResult(&r); err == nil {
			t.Errorf("Case %d: expected a validation error", i)
		}
	}
}

func TestBuildEvaluationPromptMentionsEverything(t *testing.T) {
	critics := []Critic{
		{Name: "Пан Василь", Persona: "Гурман", Request: "Борщ"},
		{Name: "Орк Гриша", Persona: "М'ясоїд"},
	}
	prompt := BuildEvaluationPrompt([]string{"Морква (Стан: chopped)"}, critics, 42)

	for _, want := range []string{"Морква (Стан: chopped)", "Пан Василь", "Хоче: Борщ", "На розсуд шефа", "42 Gold"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected the prompt to mention %q", want)
		}
	}
}

func TestBudgetGate(t *testing.T) {
	gate := NewBudgetGate(1.0, 10.0)

	if !gate.CanSpend(0.5) {
		t.Error("Expected spend within budget to pass")
	}
	gate.RecordSpend(0.8)
	if gate.CanSpend(0.5) {
		t.Error("Expected the daily limit to block further spend")
	}
	if !gate.CanSpend(0.2) {
		t.Error("Expected spend up to the limit to pass")
	}
}
