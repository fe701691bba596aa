package services

import (
	"neuroflow/models"
)

// awardXPBadges adds every catalog XP badge that state.XP satisfies and it does not hold yet.
func awardXPBadges(state *models.GamificationState) []models.Badge {
	return awardBadges(state, func(b models.Badge) bool { return b.UnlockedByXP(state.XP) })
}

// awardStreakBadges does the same for streak badges against streak.
func awardStreakBadges(state *models.GamificationState, streak int) []models.Badge {
	return awardBadges(state, func(b models.Badge) bool { return b.UnlockedByStreak(streak) })
}

// awardBadges appends matching badges in catalog order. Held badges are never removed or re-added.
func awardBadges(state *models.GamificationState, meets func(models.Badge) bool) []models.Badge {
	awarded := []models.Badge{}
	for _, badge := range models.BadgeCatalog {
		if state.HasBadge(badge.ID) || !meets(badge) {
			continue
		}
		state.Badges = append(state.Badges, badge.ID)
		awarded = append(awarded, badge)
	}
	return awarded
}

// FindBadge looks a badge up in the catalog.
func FindBadge(id string) (models.Badge, bool) {
	for _, b := range models.BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}
