package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NEUROFLOW_CONFIG", "")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STREAK_POLICY", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("STREAK_REFRESH_INTERVAL", "")
	streakAll = false
	cfgFile = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGrantXP(t *testing.T) {
	out, err := run(t, "grant-xp", "alice", "600")
	require.NoError(t, err)
	assert.Contains(t, out, "alice: 600 xp, level 2 (level up)")
}

func TestGrantXPRejectsBadInput(t *testing.T) {
	_, err := run(t, "grant-xp", "alice", "lots")
	assert.Error(t, err)
	_, err = run(t, "grant-xp", "guest", "10")
	assert.Error(t, err)
	_, err = run(t, "grant-xp", "alice", "0")
	assert.Error(t, err)
}

func TestStreakCommand(t *testing.T) {
	out, err := run(t, "streak", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "alice: streak 0, 0 new badges")

	out, err = run(t, "streak", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "refreshed 0 sessions, 0 failed")

	_, err = run(t, "streak")
	assert.Error(t, err)
}

func TestMigrateMemory(t *testing.T) {
	_, err := run(t, "migrate")
	assert.NoError(t, err)
}
