package services

import (
	"testing"

	"neuroflow/models"
	"neuroflow/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileDefault(t *testing.T) {
	env := newTestEnv(t)
	p, err := env.profiles.GetProfile(env.ctx, storage.GuestSession())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile(), p)
	assert.False(t, p.Onboarded)
}

func TestSaveProfileOverwritesWithoutOnboarding(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")

	p := models.Profile{Name: "  Jan van der Berg ", Email: " Jan@Example.com", Chronotype: models.ChronotypeOwl, MainGoal: "Learning", Theme: models.ThemeMatrix}
	require.NoError(t, env.profiles.SaveProfile(env.ctx, sess, p))

	got, err := env.profiles.GetProfile(env.ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "Jan van der Berg", got.Name, "names are stored as given")
	assert.Equal(t, "Jan@Example.com", got.Email)
	assert.Equal(t, models.ChronotypeOwl, got.Chronotype)
	assert.False(t, got.Onboarded, "the store never sets onboarded itself")

	// full overwrite: fields left empty do not survive
	p2 := models.Profile{Name: "Ada", Chronotype: models.ChronotypeLark, Theme: models.ThemeZen, Onboarded: true}
	require.NoError(t, env.profiles.SaveProfile(env.ctx, sess, p2))
	got, err = env.profiles.GetProfile(env.ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "", got.MainGoal)
	assert.True(t, got.Onboarded)
}

func TestSaveProfileValidates(t *testing.T) {
	env := newTestEnv(t)
	sess := userSession(t, "alice")
	bad := models.DefaultProfile()
	bad.Chronotype = "Night Owl"
	assert.ErrorIs(t, env.profiles.SaveProfile(env.ctx, sess, bad), ErrInvalidArgument)

	bad = models.DefaultProfile()
	bad.Theme = "neon"
	assert.ErrorIs(t, env.profiles.SaveProfile(env.ctx, sess, bad), ErrInvalidArgument)
}

func TestProfileSwitchingUsers(t *testing.T) {
	env := newTestEnv(t)
	a := models.DefaultProfile()
	a.Name = "Alice"
	require.NoError(t, env.profiles.SaveProfile(env.ctx, userSession(t, "alice"), a))

	got, err := env.profiles.GetProfile(env.ctx, userSession(t, "bob"))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile(), got)
}
