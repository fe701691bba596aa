package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"neuroflow/models"
	"neuroflow/storage"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type fakeCoach struct {
	mu          sync.Mutex
	fail        bool
	stats       models.DailyStats
	plan        *models.DailyPlan
	readiness   models.ReadinessAnalysis
	debrief     string
	suggestions []models.HabitSuggestion
	image       GeneratedImage

	journalCalls int
	lastReview   ReviewInput
}

var errFakeCoach = errors.New("model overloaded")

func (f *fakeCoach) err(op string) error {
	if f.fail {
		return coachErr(op, errFakeCoach)
	}
	return nil
}

func (f *fakeCoach) AnalyzeJournal(_ context.Context, _ string) (*models.DailyStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.journalCalls++
	if err := f.err("journal"); err != nil {
		return nil, err
	}
	st := f.stats
	return &st, nil
}

func (f *fakeCoach) SuggestPlan(_ context.Context, _ models.Profile) (*models.DailyPlan, error) {
	if err := f.err("plan"); err != nil {
		return nil, err
	}
	return f.plan, nil
}

func (f *fakeCoach) AnalyzeReadiness(_ context.Context, _ models.HealthMetrics, _ models.Profile) (*models.ReadinessAnalysis, error) {
	if err := f.err("readiness"); err != nil {
		return nil, err
	}
	r := f.readiness
	return &r, nil
}

func (f *fakeCoach) ReviewDebrief(_ context.Context, in ReviewInput) (string, error) {
	f.lastReview = in
	if err := f.err("review"); err != nil {
		return "", err
	}
	return f.debrief, nil
}

func (f *fakeCoach) SuggestHabits(_ context.Context, _ models.Profile, _ []models.Habit) ([]models.HabitSuggestion, error) {
	if err := f.err("suggestions"); err != nil {
		return nil, err
	}
	return f.suggestions, nil
}

func (f *fakeCoach) GenerateImage(_ context.Context, _ string) (*GeneratedImage, error) {
	if err := f.err("image"); err != nil {
		return nil, err
	}
	img := f.image
	return &img, nil
}

type fakeUploader struct {
	uploads map[string][]byte
}

func (u *fakeUploader) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if u.uploads == nil {
		u.uploads = map[string][]byte{}
	}
	u.uploads[key] = data
	return "https://cdn.example.com/" + key, nil
}

type testEnv struct {
	ctx      context.Context
	store    *storage.Store
	clock    *clockwork.FakeClock
	cal      Calendar
	coach    *fakeCoach
	uploader *fakeUploader

	logs     *DailyLogService
	streaks  *StreakCalculator
	game     *GamificationService
	profiles *ProfileService
	habits   *HabitService
	journal  *JournalService
	health   *HealthService
	briefing *BriefingService
	review   *ReviewService
	vision   *VisionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	clock := clockwork.NewFakeClockAt(testNow)
	cal := NewCalendar(clock, time.UTC)
	store := storage.NewStore(storage.NewMemoryBackend(), "neuroflow-", logger)
	coach := &fakeCoach{
		stats:     models.DailyStats{Focus: 70, Energy: 60, Mood: 80, Wins: []string{"🚀 shipped"}, AIAdvice: "Sleep early."},
		plan:      &models.DailyPlan{MIT: "Write report", Top3: []string{"Run", "Read", "Call mom"}, Quote: "Begin."},
		readiness: models.ReadinessAnalysis{Score: 77, Advice: "Train hard."},
		debrief:   "### 🧠 Data Insight\nGood week.",
		image:     GeneratedImage{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"},
	}
	uploader := &fakeUploader{}

	logs := NewDailyLogService(store, logger)
	streaks := NewStreakCalculator(logs, cal, StreakStrict)
	game := NewGamificationService(store, streaks, logger)
	profiles := NewProfileService(store, logger)

	return &testEnv{
		ctx:      context.Background(),
		store:    store,
		clock:    clock,
		cal:      cal,
		coach:    coach,
		uploader: uploader,
		logs:     logs,
		streaks:  streaks,
		game:     game,
		profiles: profiles,
		habits:   NewHabitService(store, logs, game, profiles, coach, logger),
		journal:  NewJournalService(logs, cal, game, coach, logger),
		health:   NewHealthService(store, profiles, coach, cal, logger),
		briefing: NewBriefingService(logs, profiles, coach, logger),
		review:   NewReviewService(store, logs, profiles, coach, cal, logger),
		vision:   NewVisionService(store, game, coach, uploader, cal, logger),
	}
}

func userSession(t *testing.T, id string) storage.Session {
	t.Helper()
	sess, err := storage.NewSession(id)
	require.NoError(t, err)
	return sess
}

// seedDay writes a log for the day n days before today with count completions.
func (e *testEnv) seedDay(t *testing.T, sess storage.Session, n, count int) {
	t.Helper()
	date := DaysBack(e.cal.Now(), n)
	_, err := e.logs.UpsertLog(e.ctx, sess, date, func(l *models.DailyLog) error {
		l.CompletedHabitIDs = []string{}
		for i := 0; i < count; i++ {
			l.CompletedHabitIDs = append(l.CompletedHabitIDs, models.DailyProtocol[i].ID)
		}
		return nil
	})
	require.NoError(t, err)
}

func putState(e *testEnv, sess storage.Session, st models.GamificationState) error {
	return storage.Put(e.ctx, e.store, sess, models.KeyGamification, st)
}
