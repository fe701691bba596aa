package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"neuroflow/models"
	"neuroflow/storage"

	"github.com/gosimple/unidecode"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

const journalHistoryDays = 30

// JournalResult is the outcome of saving an entry. Analyzed is false when the coach failed;
// the entry is still stored with the previous stats, if any, and the caller may resubmit.
type JournalResult struct {
	Log      *models.DailyLog `json:"log"`
	Analyzed bool             `json:"analyzed"`
	Award    *AwardResult     `json:"award,omitempty"`
}

type JournalService struct {
	Logs         *DailyLogService
	Calendar     Calendar
	Gamification *GamificationService
	Coach        Coach
	Weights      XPWeights
	Logger       *zap.Logger
}

func NewJournalService(logs *DailyLogService, cal Calendar, game *GamificationService, coach Coach, logger *zap.Logger) *JournalService {
	return &JournalService{Logs: logs, Calendar: cal, Gamification: game, Coach: coach, Weights: DefaultXPWeights, Logger: logger}
}

// SaveEntry stores the day's journal with the coach's stats and awards journal XP the first
// time the date gets an entry.
func (s *JournalService) SaveEntry(ctx context.Context, sess storage.Session, date, entry, mood string) (*JournalResult, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil, invalidArgf("journal entry is empty")
	}
	if _, err := models.ParseDate(date); err != nil {
		return nil, invalidArgf("%v", err)
	}

	res := &JournalResult{}
	stats, err := s.Coach.AnalyzeJournal(ctx, entry)
	switch {
	case err == nil:
		res.Analyzed = true
		stats.Tags = normalizeTags(stats.Tags)
		stats.SelectedMood = strings.TrimSpace(mood)
	case errors.Is(err, ErrCoachUnavailable):
		s.Logger.Warn("journal saved without analysis", zap.String("namespace", sess.Namespace()), zap.Error(err))
		stats = nil
	default:
		return nil, err
	}

	log, hadEntry, err := s.Logs.setJournal(ctx, sess, date, entry, strings.TrimSpace(mood), stats)
	if err != nil {
		return nil, err
	}
	res.Log = log
	if !hadEntry {
		if res.Award, err = s.Gamification.AwardXP(ctx, sess, s.Weights.JournalEntry); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// History returns journaled days from the last 30, newest first.
func (s *JournalService) History(ctx context.Context, sess storage.Session) ([]models.DailyLog, error) {
	logs, err := s.Logs.RecentLogs(ctx, sess, s.Calendar.Now(), journalHistoryDays)
	if err != nil {
		return nil, err
	}
	out := []models.DailyLog{}
	for _, l := range logs {
		if l.Journaled() {
			out = append(out, l)
		}
	}
	return out, nil
}

// normalizeTags folds tags to lower-case ASCII, dropping blanks and duplicates.
func normalizeTags(tags []string) []string {
	fold := cases.Fold()
	seen := map[string]struct{}{}
	out := []string{}
	for _, t := range tags {
		t = fold.String(strings.TrimSpace(unidecode.Unidecode(t)))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
