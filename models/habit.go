package models

import (
	"errors"
	"strings"
)

type HabitCategory string

const (
	CategoryMorning      HabitCategory = "Morning"
	CategoryDeepWork     HabitCategory = "Deep Work"
	CategoryAfternoon    HabitCategory = "Afternoon"
	CategoryEvening      HabitCategory = "Evening"
	CategoryStateShifter HabitCategory = "State Shifter"
)

type HabitType string

const (
	HabitDaily    HabitType = "daily"
	HabitOnDemand HabitType = "on-demand"
)

// Habit is a protocol step, a state shifter or a user-added habit.
type Habit struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Time        string        `json:"time,omitempty"`
	Category    HabitCategory `json:"category"`
	Description string        `json:"description,omitempty"`
	Benefit     string        `json:"benefit,omitempty"`
	Type        HabitType     `json:"type"`
	VideoID     string        `json:"videoId,omitempty"`
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" || strings.TrimSpace(h.Title) == "" {
		return errors.New("habit needs an id and a title")
	}
	return nil
}

// CustomHabits is the list stored under "custom-habits".
type CustomHabits []Habit

func (c CustomHabits) Validate() error {
	for _, h := range c {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HabitSuggestion is a coach-proposed habit the user may adopt.
type HabitSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Benefit     string `json:"benefit"`
	Reason      string `json:"reason"`
	VideoID     string `json:"videoId,omitempty"`
}

// DailyProtocol is the fixed daily habit schedule.
var DailyProtocol = []Habit{
	{ID: "dp-1", Time: "06:30", Title: "🛌 Wake Up", Description: "Feet on floor immediately", Category: CategoryMorning, Type: HabitDaily},
	{ID: "dp-2", Time: "06:35", Title: "🕌 Spirit Anchor", Description: "Prayer / Meditation", Category: CategoryMorning, Type: HabitDaily, VideoID: "inpok4MKVLM"},
	{ID: "dp-3", Time: "06:50", Title: "📝 Top 3 Goals", Description: "Write them down", Category: CategoryMorning, Type: HabitDaily},
	{ID: "dp-4", Time: "07:00", Title: "☀️ Morning Light", Description: "Get sun in eyes (10m)", Category: CategoryMorning, Type: HabitDaily, VideoID: "5YV_iKnzDRg"},
	{ID: "dp-5", Time: "07:50", Title: "🎯 Define MIT", Description: "Most Important Task", Category: CategoryMorning, Type: HabitDaily},
	{ID: "dp-7", Time: "08:30", Title: "🐸 Deep Work Block", Description: "90m hard focus", Category: CategoryDeepWork, Type: HabitDaily},
	{ID: "dp-9", Time: "10:15", Title: "🧠 Skill Practice", Description: "Learning session", Category: CategoryDeepWork, Type: HabitDaily},
	{ID: "dp-11", Time: "12:30", Title: "🔌 Brain Break", Description: "Walk or NSDR", Category: CategoryDeepWork, Type: HabitDaily, VideoID: "pL02HRFk2vo"},
	{ID: "dp-13", Time: "14:30", Title: "🏋️ Movement", Description: "Pushups / Squats", Category: CategoryAfternoon, Type: HabitDaily, VideoID: "iodx4n62p28"},
	{ID: "dp-14", Time: "14:45", Title: "📥 Admin Block", Description: "Emails & Chores", Category: CategoryAfternoon, Type: HabitDaily},
	{ID: "dp-18", Time: "20:00", Title: "📊 Daily Review", Description: "Log wins & plan", Category: CategoryEvening, Type: HabitDaily},
	{ID: "dp-19", Time: "20:30", Title: "📵 Screens Off", Description: "Dim Lights", Category: CategoryEvening, Type: HabitDaily},
	{ID: "dp-20", Time: "21:30", Title: "😴 Sleep", Description: "Cool room", Category: CategoryEvening, Type: HabitDaily},
}

// StateShifters are on-demand interventions. Using one awards XP but never touches the log.
var StateShifters = []Habit{
	{ID: "ss-1", Title: "❄️ Cold Surge", Description: "2-min cold shower", Benefit: "Energy", Category: CategoryStateShifter, Type: HabitOnDemand, VideoID: "VaMjhwFE1Zw"},
	{ID: "ss-2", Title: "🌬️ Oxygen Flood", Description: "30 power breaths (Wim Hof)", Benefit: "Alertness", Category: CategoryStateShifter, Type: HabitOnDemand, VideoID: "tybOi4hjZFQ"},
	{ID: "ss-3", Title: "🔥 Heat Shock", Description: "20-min sauna/hot bath", Benefit: "Relaxation", Category: CategoryStateShifter, Type: HabitOnDemand},
	{ID: "ss-4", Title: "⚡ Power Nap", Description: "20 mins max", Benefit: "Reboot", Category: CategoryStateShifter, Type: HabitOnDemand, VideoID: "5MuIMqhT8DM"},
	{ID: "ss-5", Title: "👁️ Visual Anchor", Description: "Stare at a point for 30s", Benefit: "Focus", Category: CategoryStateShifter, Type: HabitOnDemand},
	{ID: "ss-6", Title: "🎧 40Hz Sync", Description: "Binaural beats listening", Benefit: "Concentration", Category: CategoryStateShifter, Type: HabitOnDemand, VideoID: "1UAzQnsW1eE"},
	{ID: "ss-7", Title: "📵 Digital Detox", Description: "Phone in another room", Benefit: "Clarity", Category: CategoryStateShifter, Type: HabitOnDemand},
	{ID: "ss-8", Title: "🧘 NSDR Reset", Description: "10-min Yoga Nidra", Benefit: "Dopamine Recovery", Category: CategoryStateShifter, Type: HabitOnDemand, VideoID: "pL02HRFk2vo"},
	{ID: "ss-10", Title: "🧱 Eat the Frog", Description: "Do 1 hated task now", Benefit: "Grit", Category: CategoryStateShifter, Type: HabitOnDemand},
	{ID: "ss-11", Title: "🌪️ Motion Shift", Description: "10 Squats + Shake", Benefit: "Wake Up", Category: CategoryStateShifter, Type: HabitOnDemand},
	{ID: "ss-12", Title: "👀 Horizon Gaze", Description: "Look at distance outside", Benefit: "Calm", Category: CategoryStateShifter, Type: HabitOnDemand},
}

// FindStateShifter looks up an on-demand shifter by id.
func FindStateShifter(id string) (Habit, bool) {
	for _, h := range StateShifters {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}
