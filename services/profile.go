package services

import (
	"context"
	"strings"

	"neuroflow/models"
	"neuroflow/storage"

	"go.uber.org/zap"
)

type ProfileService struct {
	Store  *storage.Store
	Logger *zap.Logger
}

func NewProfileService(store *storage.Store, logger *zap.Logger) *ProfileService {
	return &ProfileService{Store: store, Logger: logger}
}

// GetProfile returns the saved profile, or DefaultProfile when none was saved.
func (s *ProfileService) GetProfile(ctx context.Context, sess storage.Session) (models.Profile, error) {
	p, err := storage.Get[models.Profile](ctx, s.Store, sess, models.KeyProfile)
	if err != nil {
		return models.Profile{}, err
	}
	if p == nil {
		return models.DefaultProfile(), nil
	}
	return *p, nil
}

// SaveProfile overwrites the whole profile as given, trimmed. It never sets Onboarded on its own.
func (s *ProfileService) SaveProfile(ctx context.Context, sess storage.Session, p models.Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.MainGoal = strings.TrimSpace(p.MainGoal)
	if err := p.Validate(); err != nil {
		return invalidArgf("%v", err)
	}
	return storage.Put(ctx, s.Store, sess, models.KeyProfile, p)
}
