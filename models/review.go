package models

import "fmt"

type ReviewPeriod string

const (
	ReviewWeekly    ReviewPeriod = "weekly"
	ReviewMonthly   ReviewPeriod = "monthly"
	ReviewQuarterly ReviewPeriod = "quarterly"
)

// Days is the look-back window of the period.
func (p ReviewPeriod) Days() int {
	switch p {
	case ReviewWeekly:
		return 7
	case ReviewMonthly:
		return 30
	case ReviewQuarterly:
		return 90
	}
	return 0
}

func ParseReviewPeriod(s string) (ReviewPeriod, error) {
	p := ReviewPeriod(s)
	if p.Days() == 0 {
		return "", fmt.Errorf("unknown review period %q", s)
	}
	return p, nil
}

// SleepFocusPoint pairs a night's sleep with the next day's focus.
type SleepFocusPoint struct {
	Date  string  `json:"date"`
	Sleep float64 `json:"sleep"`
	Focus int     `json:"focus"`
}

// ReviewSummary is aggregated from the period's daily logs.
type ReviewSummary struct {
	Days          int               `json:"days"`
	LoggedDays    int               `json:"loggedDays"`
	Completions   int               `json:"completions"`
	AverageFocus  int               `json:"averageFocus"`
	AverageEnergy int               `json:"averageEnergy"`
	AverageMood   int               `json:"averageMood"`
	Wins          []string          `json:"wins"`
	SleepMatrix   []SleepFocusPoint `json:"sleepMatrix,omitempty"`
}

// Review is a submitted periodic review, stored under review-<period>.
type Review struct {
	Period         ReviewPeriod  `json:"period"`
	StartDate      string        `json:"startDate"`
	EndDate        string        `json:"endDate"`
	BigWins        []string      `json:"bigWins"`
	LessonsLearned string        `json:"lessonsLearned"`
	NextGoals      []string      `json:"nextGoals"`
	Summary        ReviewSummary `json:"summary"`
	AIAnalysis     string        `json:"aiAnalysis,omitempty"`
}

func (r Review) Validate() error {
	if r.Period.Days() == 0 {
		return fmt.Errorf("unknown review period %q", r.Period)
	}
	if _, err := ParseDate(r.StartDate); err != nil {
		return err
	}
	_, err := ParseDate(r.EndDate)
	return err
}
