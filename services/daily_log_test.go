package services

import (
	"errors"
	"testing"

	"neuroflow/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogAbsent(t *testing.T) {
	env := newTestEnv(t)
	log, err := env.logs.GetLog(env.ctx, userSession(t, "alice"), "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, log)
}

func TestMalformedDatesAreRejected(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	for _, d := range []string{"", "2024-5-1", "2024-02-30", "yesterday"} {
		_, err := env.logs.GetLog(env.ctx, sess, d)
		assert.ErrorIs(t, err, ErrInvalidArgument, d)
		_, _, err = env.logs.ToggleHabitCompletion(env.ctx, sess, d, "dp-1", true)
		assert.ErrorIs(t, err, ErrInvalidArgument, d)
	}
}

func TestToggleHabitSetSemantics(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	date := "2024-05-01"

	log, changed, err := env.logs.ToggleHabitCompletion(env.ctx, sess, date, "dp-1", true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"dp-1"}, log.CompletedHabitIDs)

	log, changed, err = env.logs.ToggleHabitCompletion(env.ctx, sess, date, "dp-1", true)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []string{"dp-1"}, log.CompletedHabitIDs)

	log, changed, err = env.logs.ToggleHabitCompletion(env.ctx, sess, date, "dp-9", false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []string{"dp-1"}, log.CompletedHabitIDs)

	log, changed, err = env.logs.ToggleHabitCompletion(env.ctx, sess, date, "dp-1", false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, log.CompletedHabitIDs)
	assert.Equal(t, date, log.Date)
}

func TestUpsertLogKeepsOtherFields(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	date := "2024-05-01"

	_, err := env.logs.SetJournal(env.ctx, sess, date, "Good day", &models.DailyStats{Focus: 150, Energy: -3, Mood: 40})
	require.NoError(t, err)
	_, _, err = env.logs.ToggleHabitCompletion(env.ctx, sess, date, "dp-3", true)
	require.NoError(t, err)

	log, err := env.logs.GetLog(env.ctx, sess, date)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, "Good day", log.JournalEntry)
	assert.Equal(t, 100, log.Stats.Focus)
	assert.Equal(t, 0, log.Stats.Energy)
	assert.Equal(t, []string{"dp-3"}, log.CompletedHabitIDs)
}

func TestUpsertLogMutatorErrorWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	boom := errors.New("boom")
	_, err := env.logs.UpsertLog(env.ctx, sess, "2024-05-01", func(l *models.DailyLog) error {
		l.JournalEntry = "never stored"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	log, err := env.logs.GetLog(env.ctx, sess, "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, log)
}

func TestSetPlanRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	plan := models.DailyPlan{MIT: "Ship parser", Top3: []string{"a", "b", "c"}, Quote: "Go"}

	_, err := env.logs.SetPlan(env.ctx, sess, "2024-05-01", plan)
	require.NoError(t, err)

	got, err := env.logs.GetLog(env.ctx, sess, "2024-05-01")
	require.NoError(t, err)
	want := &models.DailyLog{Date: "2024-05-01", CompletedHabitIDs: []string{}, Plan: &plan}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestSetPlanOverwritesAndValidates(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	date := "2024-05-01"

	_, err := env.logs.SetPlan(env.ctx, sess, date, models.DailyPlan{MIT: "First", Top3: []string{"a", "b", "c"}})
	require.NoError(t, err)
	log, err := env.logs.SetPlan(env.ctx, sess, date, models.DailyPlan{MIT: "Second", Top3: []string{"x", "y", "z"}})
	require.NoError(t, err)
	assert.Equal(t, "Second", log.Plan.MIT)

	_, err = env.logs.SetPlan(env.ctx, sess, date, models.DailyPlan{MIT: " ", Top3: []string{"a", "b", "c"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = env.logs.SetPlan(env.ctx, sess, date, models.DailyPlan{MIT: "Too few", Top3: []string{"a"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNeedsBriefing(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	date := env.cal.Today()

	need, err := env.logs.NeedsBriefing(env.ctx, sess, date)
	require.NoError(t, err)
	assert.True(t, need)

	_, _, err = env.logs.ToggleHabitCompletion(env.ctx, sess, date, "dp-1", true)
	require.NoError(t, err)
	need, err = env.logs.NeedsBriefing(env.ctx, sess, date)
	require.NoError(t, err)
	assert.True(t, need, "a log without a plan still needs the briefing")

	_, err = env.logs.SetPlan(env.ctx, sess, date, models.DailyPlan{MIT: "m", Top3: []string{"a", "b", "c"}})
	require.NoError(t, err)
	need, err = env.logs.NeedsBriefing(env.ctx, sess, date)
	require.NoError(t, err)
	assert.False(t, need)
}

func TestRecentLogsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	env.seedDay(t, sess, 0, 1)
	env.seedDay(t, sess, 2, 2)
	env.seedDay(t, sess, 9, 3)

	logs, err := env.logs.RecentLogs(env.ctx, sess, env.cal.Now(), 7)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-05-10", logs[0].Date)
	assert.Equal(t, "2024-05-08", logs[1].Date)

	_, err = env.logs.RecentLogs(env.ctx, sess, env.cal.Now(), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	logs, err = env.logs.RecentLogs(env.ctx, sess, env.cal.Now(), StreakWindowDays)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	_, err = env.logs.RecentLogs(env.ctx, sess, env.cal.Now(), StreakWindowDays+1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
