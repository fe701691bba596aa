package models

// Badge is a static achievement definition. Exactly one of the thresholds is set.
type Badge struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	XPThreshold     int    `json:"xpThreshold,omitempty"`
	StreakThreshold int    `json:"streakThreshold,omitempty"`
}

// UnlockedByXP reports whether the badge is an XP badge satisfied at xp.
func (b Badge) UnlockedByXP(xp int) bool {
	return b.XPThreshold > 0 && xp >= b.XPThreshold
}

// UnlockedByStreak reports whether the badge is a streak badge satisfied at streak.
func (b Badge) UnlockedByStreak(streak int) bool {
	return b.StreakThreshold > 0 && streak >= b.StreakThreshold
}

// BadgeCatalog is the fixed badge list, evaluated in order.
var BadgeCatalog = []Badge{
	{ID: "b-1", Name: "Novice Monk", Description: "Reach Level 3", Icon: "🌱", XPThreshold: 300},
	{ID: "b-2", Name: "Dopamine Master", Description: "Reach Level 10", Icon: "🧠", XPThreshold: 1000},
	{ID: "b-3", Name: "Deep Worker", Description: "Complete 5 Deep Work blocks", Icon: "⚡", XPThreshold: 500},
	{ID: "b-4", Name: "Sleep Architect", Description: "Consistent sleep schedule", Icon: "🌙", StreakThreshold: 7},
	{ID: "b-5", Name: "Neural Ninja", Description: "Complete all daily habits", Icon: "🥷", StreakThreshold: 1},
}
