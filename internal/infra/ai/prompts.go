// Package ai - prompts.go
// Prompt construction for the critic jury. All player-visible text is
// Ukrainian; the instructions to the model stay in English.
package ai

import (
	"fmt"
	"strings"
)

// ChefSystemPrompt frames every judging call. It embeds the scoring
// contract the engine relies on when applying rewards.
const ChefSystemPrompt = `
You are a legendary Chef and Dungeon Master in a Cooking RPG.
All player-facing text you produce MUST be in UKRAINIAN.

## SAFETY RULES

If the input contains explicit violence, hate speech or otherwise
prohibited content, do NOT generate a recipe. Return JSON with the
name "Я не буду це готувати", the description "Я не думаю, що це
добра ідея відповідати на такий запит." and a score of 0.

## SCORING CONTRACT

- totalScore runs 0.0 to 10.0.
- Raw meat/eggs, burnt food or waste means an angry review and a
  score below 3.0. No exceptions.
- rewardGold MUST be derived from the stated ingredient cost: a good
  dish (score above 7) pays roughly 1.5x to 3x the cost, a bad dish
  (score below 4) returns a negative penalty.
- Never ignore the cost. Expensive ingredients cooked well yield
  large rewards.
`

// BuildCriticsPrompt asks for a jury of three tasters scaled to the
// player's level.
func BuildCriticsPrompt(level int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("RPG Cooking Game. Player level %d.\n", level))
	sb.WriteString("Generate 3 critics as a JSON array. Language: UKRAINIAN.\n")
	sb.WriteString("One must be a Commoner, one a Noble, one a Monster or Weird creature.\n")
	sb.WriteString("Crucial: at least one critic MUST have a specific 'request' ")
	sb.WriteString("(e.g. \"Я хочу стейк з кров'ю\" or \"Зроби мені пюре\").\n")
	sb.WriteString("Use funny, stereotypical personas.\n")
	sb.WriteString("Each element has fields: id, name, persona, request (optional), avatar (emoji).\n")
	return sb.String()
}

// BuildEvaluationPrompt describes the plated dish, the waiting jury
// and the money on the table.
func BuildEvaluationPrompt(ingredients []string, critics []Critic, ingredientsCost int) string {
	criticLines := make([]string, len(critics))
	for i, c := range critics {
		request := c.Request
		if request == "" {
			request = "На розсуд шефа"
		}
		criticLines[i] = fmt.Sprintf("%s (%s) [Хоче: %s]", c.Name, c.Persona, request)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("PLAYER COOKED WITH: %s.\n", strings.Join(ingredients, ", ")))
	sb.WriteString(fmt.Sprintf("CRITICS TASTING: %s.\n", strings.Join(criticLines, "; ")))
	sb.WriteString(fmt.Sprintf("TOTAL INGREDIENTS COST: %d Gold.\n\n", ingredientsCost))
	sb.WriteString("TASK:\n")
	sb.WriteString("1. Name & Description: invent a creative dish name and a sensory description.\n")
	sb.WriteString("2. Recipe: write a PROFESSIONAL, LOGICAL step-by-step recipe (5-8 steps) ")
	sb.WriteString("describing how the specific ingredients were combined given their state. ")
	sb.WriteString("Make it read like a real cookbook entry even if the ingredients are absurd.\n")
	sb.WriteString("3. Reviews: one REALISTIC, UNIQUE review per critic. ")
	sb.WriteString("Critics MUST reference specific ingredients and honor the scoring contract.\n\n")
	sb.WriteString("Respond with JSON in this exact shape:\n")
	sb.WriteString(`{
  "name": "string",
  "description": "string",
  "reviews": [{"criticName": "string", "persona": "string", "text": "string", "score": 0.0}],
  "totalScore": 0.0,
  "rewardGold": 0,
  "rewardXp": 0,
  "steps": [{"action": "string", "description": "string", "icon": "emoji"}]
}`)
	sb.WriteString("\n")
	return sb.String()
}

// BuildCustomAnalysisPrompt classifies a player-invented ingredient.
func BuildCustomAnalysisPrompt(name string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze this ingredient name: %q.\n", name))
	sb.WriteString("Return JSON with:\n")
	sb.WriteString("1. emoji: the best fitting single emoji.\n")
	sb.WriteString("2. tier: rarity from 1 (common) to 5 (legendary or absurd).\n")
	sb.WriteString("3. category: one of meat, veg, fruit, spice, liquid, grain, weird, magic, cosmic, tech, office, dungeon.\n")
	return sb.String()
}

// BuildExcusePrompt lets a critic answer the player's excuse in
// character.
func BuildExcusePrompt(criticName, persona, dishName, excuse, originalReview string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Roleplay: you are %s, a %s critic in a cooking game.\n", criticName, persona))
	sb.WriteString("Language: UKRAINIAN.\n\n")
	sb.WriteString(fmt.Sprintf("You gave the review %q for the dish %q.\n", originalReview, dishName))
	sb.WriteString(fmt.Sprintf("The player is making an excuse: %q.\n\n", excuse))
	sb.WriteString("Reply to the excuse. If it is sensible or funny, be slightly forgiving but witty. ")
	sb.WriteString("If it is pathetic, roast them harder. Reference specifically what they said. ")
	sb.WriteString("Keep it short, at most 20 words. Reply with plain text only.\n")
	return sb.String()
}

// ValidateDishResult checks the structural contract of an evaluation
// before the engine applies its rewards.
func ValidateDishResult(res *DishResult) error {
	if res.Name == "" {
		return fmt.Errorf("missing dish name")
	}
	if res.TotalScore < 0 || res.TotalScore > 10 {
		return fmt.Errorf("totalScore out of range: %f", res.TotalScore)
	}
	for i, r := range res.Reviews {
		if r.CriticName == "" {
			return fmt.Errorf("review %d missing critic name", i)
		}
	}
	return nil
}
