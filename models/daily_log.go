package models

import (
	"errors"
	"fmt"
	"strings"
)

// DailyPlan is the briefing outcome for a day: the MIT, three supporting goals and a quote.
type DailyPlan struct {
	MIT   string   `json:"mit"`
	Top3  []string `json:"top3"`
	Quote string   `json:"quote"`
}

// Validate checks the plan shape. An empty quote is allowed.
func (p DailyPlan) Validate() error {
	if strings.TrimSpace(p.MIT) == "" {
		return errors.New("plan mit is required")
	}
	if len(p.Top3) != 3 {
		return fmt.Errorf("plan needs exactly 3 top goals, got %d", len(p.Top3))
	}
	return nil
}

// DailyStats is the coach's read of a journal entry. Numeric fields live in [0,100].
type DailyStats struct {
	Focus        int      `json:"focus"`
	Energy       int      `json:"energy"`
	Mood         int      `json:"mood"`
	Wins         []string `json:"wins"`
	AIAdvice     string   `json:"aiAdvice"`
	Tags         []string `json:"tags,omitempty"`
	SelectedMood string   `json:"selectedMood,omitempty"`
}

// Clamp pins every score into [0,100].
func (s *DailyStats) Clamp() {
	s.Focus = clampScore(s.Focus)
	s.Energy = clampScore(s.Energy)
	s.Mood = clampScore(s.Mood)
}

func (s DailyStats) Validate() error {
	for name, v := range map[string]int{"focus": s.Focus, "energy": s.Energy, "mood": s.Mood} {
		if v < 0 || v > 100 {
			return fmt.Errorf("stats %s out of range: %d", name, v)
		}
	}
	return nil
}

// DailyLog is the per-date record stored under log-YYYY-MM-DD.
type DailyLog struct {
	Date              string      `json:"date"`
	CompletedHabitIDs []string    `json:"completedHabitIds"`
	JournalEntry      string      `json:"journalEntry,omitempty"`
	MoodScore         *int        `json:"moodScore,omitempty"`
	Stats             *DailyStats `json:"stats,omitempty"`
	Plan              *DailyPlan  `json:"plan,omitempty"`
}

// NewDailyLog returns the synthesized default for a date with no record yet.
func NewDailyLog(date string) DailyLog {
	return DailyLog{Date: date, CompletedHabitIDs: []string{}}
}

// Validate rejects records that could not have been written by this service.
func (l DailyLog) Validate() error {
	if _, err := ParseDate(l.Date); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(l.CompletedHabitIDs))
	for _, id := range l.CompletedHabitIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate habit id %q", id)
		}
		seen[id] = struct{}{}
	}
	if l.Stats != nil {
		if err := l.Stats.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasHabit reports whether habitID is in the completed set.
func (l DailyLog) HasHabit(habitID string) bool {
	for _, id := range l.CompletedHabitIDs {
		if id == habitID {
			return true
		}
	}
	return false
}

// SetHabit adds or removes habitID keeping set semantics. It reports whether the list changed.
func (l *DailyLog) SetHabit(habitID string, completed bool) bool {
	if l.CompletedHabitIDs == nil {
		l.CompletedHabitIDs = []string{}
	}
	if completed {
		if l.HasHabit(habitID) {
			return false
		}
		l.CompletedHabitIDs = append(l.CompletedHabitIDs, habitID)
		return true
	}
	for i, id := range l.CompletedHabitIDs {
		if id == habitID {
			l.CompletedHabitIDs = append(l.CompletedHabitIDs[:i:i], l.CompletedHabitIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Journaled reports whether the day has a journal entry.
func (l DailyLog) Journaled() bool {
	return strings.TrimSpace(l.JournalEntry) != ""
}

func clampScore(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
