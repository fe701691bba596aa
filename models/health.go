package models

import "fmt"

// HealthMetrics is the latest simulated biometric sync, stored under "health-metrics".
type HealthMetrics struct {
	HRV              int     `json:"hrv"`
	RestingHeartRate int     `json:"restingHeartRate"`
	SleepScore       int     `json:"sleepScore"`
	SleepHours       float64 `json:"sleepHours"`
	ActivityScore    int     `json:"activityScore"`
	Steps            int     `json:"steps"`
	ReadinessScore   int     `json:"readinessScore"`
	LastSynced       string  `json:"lastSynced"`
}

func (m HealthMetrics) Validate() error {
	if m.Steps < 0 || m.SleepHours < 0 {
		return fmt.Errorf("negative health metric")
	}
	if m.ReadinessScore < 0 || m.ReadinessScore > 100 {
		return fmt.Errorf("readiness out of range: %d", m.ReadinessScore)
	}
	return nil
}

// ReadinessAnalysis is the coach's reading of a metrics snapshot.
type ReadinessAnalysis struct {
	Score  int    `json:"score"`
	Advice string `json:"advice"`
}
