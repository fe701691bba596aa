package models

import "errors"

// XPPerLevel is the linear level step: level = 1 + floor(xp / XPPerLevel).
const XPPerLevel = 500

// LevelForXP derives the level from xp. It is the only way a level is ever produced.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}

// GamificationState is the per-user progression record stored under "gamification".
// Streak is a display cache; the daily logs are authoritative.
type GamificationState struct {
	XP            int      `json:"xp"`
	Level         int      `json:"level"`
	Streak        int      `json:"streak"`
	Badges        []string `json:"badges"`
	UnlockedItems []string `json:"unlockedItems"`
}

// NewGamificationState returns the zero-state of a fresh namespace.
func NewGamificationState() GamificationState {
	return GamificationState{Level: 1, Badges: []string{}, UnlockedItems: []string{}}
}

func (s GamificationState) Validate() error {
	if s.XP < 0 {
		return errors.New("negative xp")
	}
	if s.Streak < 0 {
		return errors.New("negative streak")
	}
	return nil
}

// Normalize re-derives the level and replaces nil sets with empty ones.
func (s *GamificationState) Normalize() {
	s.Level = LevelForXP(s.XP)
	if s.Badges == nil {
		s.Badges = []string{}
	}
	if s.UnlockedItems == nil {
		s.UnlockedItems = []string{}
	}
}

func (s GamificationState) HasBadge(id string) bool {
	return contains(s.Badges, id)
}

func (s GamificationState) HasItem(id string) bool {
	return contains(s.UnlockedItems, id)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
