package services

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"neuroflow/models"
	"neuroflow/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaUploader publishes generated media and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error)
}

// VisionResult is the outcome of adding to the board.
type VisionResult struct {
	Item  models.VisionItem `json:"item"`
	Award *AwardResult      `json:"award"`
}

type VisionService struct {
	Store        *storage.Store
	Gamification *GamificationService
	Coach        Coach
	Media        MediaUploader
	Calendar     Calendar
	Weights      XPWeights
	Logger       *zap.Logger
}

func NewVisionService(store *storage.Store, game *GamificationService, coach Coach, media MediaUploader, cal Calendar, logger *zap.Logger) *VisionService {
	return &VisionService{
		Store:        store,
		Gamification: game,
		Coach:        coach,
		Media:        media,
		Calendar:     cal,
		Weights:      DefaultXPWeights,
		Logger:       logger,
	}
}

// Board returns the vision board, newest first.
func (s *VisionService) Board(ctx context.Context, sess storage.Session) (models.VisionBoard, error) {
	board, err := storage.Get[models.VisionBoard](ctx, s.Store, sess, models.KeyVisionBoard)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return models.VisionBoard{}, nil
	}
	return *board, nil
}

// Visualize generates an image for prompt, uploads it, puts it at the top of the board and
// awards visualization XP.
func (s *VisionService) Visualize(ctx context.Context, sess storage.Session, prompt string) (*VisionResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, invalidArgf("prompt is required")
	}
	if s.Media == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}

	img, err := s.Coach.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	objectKey := fmt.Sprintf("vision/%s/%s%s", sess.Namespace(), id, extensionFor(img.MIMEType))
	url, err := s.Media.Upload(ctx, objectKey, img.Data, img.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload vision image: %w", err)
	}

	item := models.VisionItem{
		ID:        id,
		Type:      models.VisionImage,
		URL:       url,
		Prompt:    prompt,
		Timestamp: s.Calendar.Now().UnixMilli(),
	}
	_, err = storage.Update(ctx, s.Store, sess, models.KeyVisionBoard, func(cur *models.VisionBoard) (models.VisionBoard, error) {
		board := models.VisionBoard{item}
		if cur != nil {
			board = append(board, (*cur)...)
		}
		return board, nil
	})
	if err != nil {
		return nil, err
	}

	award, err := s.Gamification.AwardXP(ctx, sess, s.Weights.Visualization)
	if err != nil {
		return nil, err
	}
	return &VisionResult{Item: item, Award: award}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
