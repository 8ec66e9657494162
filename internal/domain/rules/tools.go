// Package rules contains the pure transformation logic of the kitchen:
// tool definitions, the cooking rule book, and deterministic matching.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import "github.com/okovalenko/AlchemistChef/server/internal/domain/item"

// Tool identifies an action applicable to a workstation item.
type Tool string

const (
	ToolKnife     Tool = "KNIFE"
	ToolPan       Tool = "PAN"
	ToolPot       Tool = "POT"
	ToolOven      Tool = "OVEN"
	ToolBlender   Tool = "BLENDER"
	ToolMagicWand Tool = "MAGIC_WAND"
	ToolHands     Tool = "HANDS"
	ToolFreezer   Tool = "FREEZER"
	ToolHammer    Tool = "HAMMER"
	ToolGrater    Tool = "GRATER"
	ToolMicrowave Tool = "MICROWAVE"
)

// MinigameKind selects the skill challenge family for a tool.
type MinigameKind string

const (
	// MinigameTiming fills automatically; the player must stop it inside
	// the target window.
	MinigameTiming MinigameKind = "TIMING"
	// MinigameMashing fills only on player input; reaching the top wins.
	MinigameMashing MinigameKind = "MASHING"
)

// ToolProfile describes how a tool behaves when no explicit rule matches.
type ToolProfile struct {
	Label         string
	Emoji         string
	NamePrefix    string // Prepended to synthesized item names
	State         item.State
	RequiresWater bool
	Minigame      MinigameKind
}

// ToolProfiles is the fixed tool table.
var ToolProfiles = map[Tool]ToolProfile{
	ToolKnife:     {Label: "Нарізати", Emoji: "🔪", NamePrefix: "Нарізаний", State: item.StateChopped, Minigame: MinigameMashing},
	ToolPan:       {Label: "Смажити", Emoji: "🍳", NamePrefix: "Смажений", State: item.StateFried, Minigame: MinigameTiming},
	ToolPot:       {Label: "Варити", Emoji: "🍲", NamePrefix: "Варений", State: item.StateBoiled, RequiresWater: true, Minigame: MinigameTiming},
	ToolOven:      {Label: "Запікати", Emoji: "🔥", NamePrefix: "Запечений", State: item.StateBaked, Minigame: MinigameTiming},
	ToolBlender:   {Label: "Збити", Emoji: "🌪️", NamePrefix: "Збитий", State: item.StateBlended, Minigame: MinigameMashing},
	ToolMagicWand: {Label: "Магія", Emoji: "🪄", NamePrefix: "Чарівний", State: item.StateMagicInfused, Minigame: MinigameMashing},
	ToolHands:     {Label: "Місити", Emoji: "🖐️", NamePrefix: "Пом'ятий", State: item.StateSeasoned, Minigame: MinigameMashing},
	ToolFreezer:   {Label: "Морозити", Emoji: "❄️", NamePrefix: "Заморожений", State: item.StateFrozen, Minigame: MinigameTiming},
	ToolHammer:    {Label: "Відбити", Emoji: "🔨", NamePrefix: "Відбитий", State: item.StateSmashed, Minigame: MinigameMashing},
	ToolGrater:    {Label: "Натерти", Emoji: "🧀", NamePrefix: "Натертий", State: item.StateGrated, Minigame: MinigameMashing},
	ToolMicrowave: {Label: "Гріти", Emoji: "☢️", NamePrefix: "Радіоактивний", State: item.StateRadiated, Minigame: MinigameTiming},
}

// Profile returns the tool profile, falling back to a neutral entry for
// unknown tools so every (item, tool) pair still produces an output.
func Profile(tool Tool) ToolProfile {
	if p, ok := ToolProfiles[tool]; ok {
		return p
	}
	return ToolProfile{NamePrefix: "Оброблений", State: item.StateRaw, Minigame: MinigameMashing}
}

// KnownTool reports whether the tool exists in the fixed tool table.
func KnownTool(tool Tool) bool {
	_, ok := ToolProfiles[tool]
	return ok
}
