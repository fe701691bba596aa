package models

import (
	"fmt"
	"strings"
)

type Chronotype string

const (
	ChronotypeLark      Chronotype = "Lark"
	ChronotypeOwl       Chronotype = "Owl"
	ChronotypeThirdBird Chronotype = "Third Bird"
)

type Theme string

const (
	ThemeCyber  Theme = "cyber"
	ThemeZen    Theme = "zen"
	ThemeMatrix Theme = "matrix"
)

// Profile is the per-user preference record stored under "profile".
type Profile struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Avatar     string     `json:"avatar,omitempty"`
	Chronotype Chronotype `json:"chronotype"`
	MainGoal   string     `json:"mainGoal"`
	Onboarded  bool       `json:"onboarded"`
	Theme      Theme      `json:"theme"`
}

// DefaultProfile is returned for a namespace that never saved a profile.
func DefaultProfile() Profile {
	return Profile{
		Name:       "User",
		Email:      "user@example.com",
		Chronotype: ChronotypeThirdBird,
		MainGoal:   "Productivity",
		Onboarded:  false,
		Theme:      ThemeCyber,
	}
}

func (p Profile) Validate() error {
	switch p.Chronotype {
	case ChronotypeLark, ChronotypeOwl, ChronotypeThirdBird:
	default:
		return fmt.Errorf("unknown chronotype %q", p.Chronotype)
	}
	switch p.Theme {
	case ThemeCyber, ThemeZen, ThemeMatrix:
	default:
		return fmt.Errorf("unknown theme %q", p.Theme)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	return nil
}
