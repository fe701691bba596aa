package services

import (
	"testing"
	"time"

	"neuroflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func badgeIDs(badges []models.Badge) []string {
	ids := []string{}
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestGetStateZeroState(t *testing.T) {
	env := newTestEnv(t)
	state, err := env.game.GetState(env.ctx, userSession(t, "alice"))
	require.NoError(t, err)
	assert.Equal(t, models.NewGamificationState(), state)
}

func TestLevelForXP(t *testing.T) {
	cases := map[int]int{0: 1, 499: 1, 500: 2, 1999: 4, 2000: 5}
	for xp, level := range cases {
		assert.Equal(t, level, models.LevelForXP(xp), "xp=%d", xp)
	}
}

func TestAwardXPAccumulates(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")

	amounts := []int{50, 100, 25, 30, 50, 400, 1}
	total, prevXP := 0, 0
	for _, a := range amounts {
		res, err := env.game.AwardXP(env.ctx, sess, a)
		require.NoError(t, err)
		total += a
		assert.Equal(t, total, res.State.XP)
		assert.GreaterOrEqual(t, res.State.XP, prevXP)
		assert.Equal(t, models.LevelForXP(res.State.XP), res.State.Level)
		prevXP = res.State.XP
	}

	state, err := env.game.GetState(env.ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, total, state.XP)
}

func TestAwardXPRejectsNonPositive(t *testing.T) {
	env := newTestEnv(t)
	for _, a := range []int{0, -10} {
		_, err := env.game.AwardXP(env.ctx, userSession(t, "alice"), a)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestAwardXPLevelUp(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")

	res, err := env.game.AwardXP(env.ctx, sess, 499)
	require.NoError(t, err)
	assert.False(t, res.LeveledUp)
	assert.Equal(t, 1, res.State.Level)

	res, err = env.game.AwardXP(env.ctx, sess, 1)
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.State.Level)
}

func TestBadgeTriggerBoundary(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")

	res, err := env.game.AwardXP(env.ctx, sess, 299)
	require.NoError(t, err)
	assert.Empty(t, res.NewBadges)

	res, err = env.game.AwardXP(env.ctx, sess, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b-1"}, badgeIDs(res.NewBadges))
	assert.Equal(t, []string{"b-1"}, res.State.Badges)

	res, err = env.game.AwardXP(env.ctx, sess, 10)
	require.NoError(t, err)
	assert.Empty(t, res.NewBadges, "b-1 must not be re-added")
	assert.Equal(t, []string{"b-1"}, res.State.Badges)
}

func TestBadgesNeverShrink(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")

	res, err := env.game.AwardXP(env.ctx, sess, 1200)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b-1", "b-2", "b-3"}, badgeIDs(res.NewBadges))

	held := res.State.Badges
	for _, a := range []int{1, 5, 700} {
		res, err = env.game.AwardXP(env.ctx, sess, a)
		require.NoError(t, err)
		assert.Subset(t, res.State.Badges, held)
		held = res.State.Badges
	}
}

func TestStoredLevelIsRederived(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	require.NoError(t, putState(env, sess, models.GamificationState{XP: 1000, Level: 99, Badges: []string{}, UnlockedItems: []string{}}))

	state, err := env.game.GetState(env.ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Level)
}

func TestUnlockItem(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")

	state, added, err := env.game.UnlockItem(env.ctx, sess, "m-2")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"m-2"}, state.UnlockedItems)

	state, added, err = env.game.UnlockItem(env.ctx, sess, "m-2")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"m-2"}, state.UnlockedItems)
	assert.Zero(t, state.XP)

	_, _, err = env.game.UnlockItem(env.ctx, sess, "m-404")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSyncStreakAwardsStreakBadges(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	for day := 0; day < 7; day++ {
		env.seedDay(t, sess, day, 5)
	}

	res, err := env.game.SyncStreak(env.ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Streak)
	assert.Equal(t, []string{"b-4", "b-5"}, badgeIDs(res.NewBadges))
	assert.Equal(t, 7, res.State.Streak)

	// streak breaks, badges stay
	env.clock.Advance(72 * time.Hour)
	res, err = env.game.SyncStreak(env.ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Streak)
	assert.Empty(t, res.NewBadges)
	assert.ElementsMatch(t, []string{"b-4", "b-5"}, res.State.Badges)
}

func TestAwardXPDoesNotEvaluateStreakBadges(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	env.seedDay(t, sess, 0, 5)

	res, err := env.game.AwardXP(env.ctx, sess, 10)
	require.NoError(t, err)
	assert.Empty(t, res.NewBadges)
}
