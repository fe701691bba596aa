package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name   string
		policy StreakPolicy
		days   map[int]int // days back -> completions
		want   int
	}{
		{name: "no logs", policy: StreakStrict, want: 0},
		{name: "three satisfied days then a gap", policy: StreakStrict, days: map[int]int{0: 5, 1: 5, 2: 5}, want: 3},
		{name: "gap breaks the run", policy: StreakStrict, days: map[int]int{0: 5, 1: 5, 3: 5, 4: 5}, want: 2},
		{name: "four completions do not count", policy: StreakStrict, days: map[int]int{0: 5, 1: 4, 2: 5}, want: 1},
		{name: "strict breaks on unsatisfied today", policy: StreakStrict, days: map[int]int{0: 2, 1: 5, 2: 5, 3: 5}, want: 0},
		{name: "strict breaks on missing today", policy: StreakStrict, days: map[int]int{1: 5, 2: 5, 3: 5}, want: 0},
		{name: "grace skips unsatisfied today", policy: StreakTodayGrace, days: map[int]int{0: 2, 1: 5, 2: 5, 3: 5}, want: 3},
		{name: "grace skips missing today", policy: StreakTodayGrace, days: map[int]int{1: 5, 2: 5, 3: 5}, want: 3},
		{name: "grace counts satisfied today", policy: StreakTodayGrace, days: map[int]int{0: 6, 1: 5}, want: 2},
		{name: "grace still breaks on yesterday", policy: StreakTodayGrace, days: map[int]int{0: 1, 2: 5}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			sess := userSession(t, "alice")
			for back, n := range tt.days {
				env.seedDay(t, sess, back, n)
			}
			calc := NewStreakCalculator(env.logs, env.cal, tt.policy)
			got, err := calc.ComputeStreak(env.ctx, sess)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeStreakIsBoundedToAYear(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	for back := 0; back < StreakWindowDays+5; back++ {
		env.seedDay(t, sess, back, 5)
	}
	got, err := env.streaks.ComputeStreak(env.ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, StreakWindowDays, got)
}

func TestComputeStreakIgnoresOtherUsers(t *testing.T) {
	env := newTestEnv(t)
	for back := 0; back < 3; back++ {
		env.seedDay(t, userSession(t, "alice"), back, 5)
	}
	got, err := env.streaks.ComputeStreak(env.ctx, userSession(t, "bob"))
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestParseStreakPolicy(t *testing.T) {
	p, err := ParseStreakPolicy("")
	require.NoError(t, err)
	assert.Equal(t, StreakStrict, p)

	p, err = ParseStreakPolicy("today_grace")
	require.NoError(t, err)
	assert.Equal(t, StreakTodayGrace, p)

	_, err = ParseStreakPolicy("lenient")
	assert.Error(t, err)
}
