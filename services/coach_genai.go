package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"neuroflow/models"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GenAIModels names the Gemini models used per task.
type GenAIModels struct {
	Reasoning string // journal, readiness, review, suggestions
	Fast      string // daily plan
	Image     string
}

var DefaultGenAIModels = GenAIModels{
	Reasoning: "gemini-3-pro-preview",
	Fast:      "gemini-2.5-flash",
	Image:     "imagen-4.0-generate-001",
}

var reviewPersonas = map[models.ReviewPeriod]string{
	models.ReviewWeekly:    "a high-performance tactical coach who cares about execution",
	models.ReviewMonthly:   "a strategic advisor who looks for trends and habit formation",
	models.ReviewQuarterly: "a visionary strategist who looks at macro goals and trajectory",
}

// GenAICoach implements Coach on the Gemini API.
type GenAICoach struct {
	client *genai.Client
	models GenAIModels
	logger *zap.Logger
}

func NewGenAICoach(ctx context.Context, apiKey string, m GenAIModels, logger *zap.Logger) (*GenAICoach, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAICoach{client: client, models: m, logger: logger.Named("coach")}, nil
}

func jsonConfig(thinkingBudget int32) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	if thinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(thinkingBudget)}
	}
	return cfg
}

func (c *GenAICoach) generate(ctx context.Context, op, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		c.logger.Warn("generation failed", zap.String("op", op), zap.String("model", model), zap.Error(err))
		return "", coachErr(op, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", coachErr(op, errors.New("empty response"))
	}
	return text, nil
}

func (c *GenAICoach) generateJSON(ctx context.Context, op, model, prompt string, budget int32, out any) error {
	text, err := c.generate(ctx, op, model, prompt, jsonConfig(budget))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFence(text)), out); err != nil {
		return coachErr(op, fmt.Errorf("malformed JSON: %w", err))
	}
	return nil
}

// stripFence removes a ```json fence some models wrap around JSON output.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (c *GenAICoach) AnalyzeJournal(ctx context.Context, entry string) (*models.DailyStats, error) {
	prompt := fmt.Sprintf(`Analyze this journal entry.
Entry: %q

Return valid JSON with:
1. focus (0-100)
2. energy (0-100)
3. mood (0-100)
4. wins (array of 1-3 short strings with emojis)
5. aiAdvice (one simple, human sentence, no buzzwords)
6. tags (array of strings like Work, Health, Family, Learning)`, entry)

	var raw struct {
		Focus    *int     `json:"focus"`
		Energy   *int     `json:"energy"`
		Mood     *int     `json:"mood"`
		Wins     []string `json:"wins"`
		AIAdvice string   `json:"aiAdvice"`
		Tags     []string `json:"tags"`
	}
	if err := c.generateJSON(ctx, "journal", c.models.Reasoning, prompt, 2048, &raw); err != nil {
		return nil, err
	}
	stats := &models.DailyStats{
		Focus:    scoreOr(raw.Focus, 50),
		Energy:   scoreOr(raw.Energy, 50),
		Mood:     scoreOr(raw.Mood, 50),
		Wins:     raw.Wins,
		AIAdvice: raw.AIAdvice,
		Tags:     raw.Tags,
	}
	if stats.Wins == nil {
		stats.Wins = []string{}
	}
	if stats.AIAdvice == "" {
		stats.AIAdvice = "Rest well."
	}
	return stats, nil
}

func scoreOr(v *int, def int) int {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}

func (c *GenAICoach) SuggestPlan(ctx context.Context, profile models.Profile) (*models.DailyPlan, error) {
	prompt := fmt.Sprintf(`User goal: %s.
Generate a plan for today.
1. MIT: one major task that moves the needle.
2. Top 3: supporting tasks.
3. Quote: short, stoic or scientific.

Use simple language. No buzzwords.
Return JSON: {"mit": "string", "top3": ["string", "string", "string"], "quote": "string"}`, profile.MainGoal)

	var plan models.DailyPlan
	if err := c.generateJSON(ctx, "plan", c.models.Fast, prompt, 0, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *GenAICoach) AnalyzeReadiness(ctx context.Context, m models.HealthMetrics, profile models.Profile) (*models.ReadinessAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze these stats for a %s person.
Goal: %s.

Stats:
HRV: %d
Sleep: %.1fh
Steps: %d

Return JSON: {"score": number (0-100 readiness), "advice": string (1 short sentence, plain english)}`,
		profile.Chronotype, profile.MainGoal, m.HRV, m.SleepHours, m.Steps)

	var out models.ReadinessAnalysis
	if err := c.generateJSON(ctx, "readiness", c.models.Reasoning, prompt, 4096, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GenAICoach) ReviewDebrief(ctx context.Context, in ReviewInput) (string, error) {
	matrix, _ := json.Marshal(in.Review.Summary.SleepMatrix)
	prompt := fmt.Sprintf(`Act as %s.
Task: analyze my %s review.

User profile: %s, %s.

Days logged: %d of %d. Habit completions: %d.
Average focus %d, energy %d, mood %d.

Data correlation (sleep vs focus):
%s

My wins:
%s

My lessons learned:
%s

My next %s goals:
%s

Provide a debrief in Markdown with these sections:
### 🧠 Data Insight
### 🛡️ Win Analysis
### ⚔️ Strategic Pivot
### 🚀 Trajectory Check

Keep it direct, scientific and motivating. Use emojis. No corporate buzzwords.`,
		reviewPersonas[in.Period], in.Period,
		in.Profile.MainGoal, in.Profile.Chronotype,
		in.Review.Summary.LoggedDays, in.Review.Summary.Days, in.Review.Summary.Completions,
		in.Review.Summary.AverageFocus, in.Review.Summary.AverageEnergy, in.Review.Summary.AverageMood,
		matrix,
		strings.Join(append(append([]string{}, in.Review.BigWins...), in.Review.Summary.Wins...), ", "),
		in.Review.LessonsLearned,
		in.Period, strings.Join(in.Review.NextGoals, ", "))

	cfg := &genai.GenerateContentConfig{ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](8192)}}
	return c.generate(ctx, "review", c.models.Reasoning, prompt, cfg)
}

func (c *GenAICoach) SuggestHabits(ctx context.Context, profile models.Profile, current []models.Habit) ([]models.HabitSuggestion, error) {
	titles := make([]string, 0, len(current))
	for _, h := range current {
		titles = append(titles, h.Title)
	}
	prompt := fmt.Sprintf(`Suggest 3 specific, simple habits for a user who wants %q.
Current habits: %s.

Avoid corporate jargon. Use plain English. Use emojis in titles.
Format JSON: [{"title": "Title with emoji", "description": "Very short instruction", "benefit": "One word benefit", "reason": "Why?", "videoId": "Optional YouTube ID"}]`,
		profile.MainGoal, strings.Join(titles, ", "))

	var out []models.HabitSuggestion
	if err := c.generateJSON(ctx, "suggestions", c.models.Reasoning, prompt, 4096, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GenAICoach) GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error) {
	resp, err := c.client.Models.GenerateImages(ctx, c.models.Image, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		OutputMIMEType: "image/jpeg",
	})
	if err != nil {
		c.logger.Warn("image generation failed", zap.Error(err))
		return nil, coachErr("image", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, coachErr("image", errors.New("no image generated"))
	}
	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return &GeneratedImage{Data: img.ImageBytes, MIMEType: mime}, nil
}
