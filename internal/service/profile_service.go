package service

import (
	"context"
	"errors"
	"fmt"

	"listenerlab/internal/model"
	"listenerlab/internal/repository"
	"listenerlab/internal/scoring"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrSubmissionNotFound = errors.New("submission not found")

const defaultProfileCacheSize = 1024

// ProfileService derives listener profiles from response sets
type ProfileService struct {
	scorer         *scoring.Scorer
	submissionRepo repository.SubmissionRepo

	// submissions never change, so recomputed profiles can be kept indefinitely
	profiles *lru.Cache[string, *model.Profile]
}

// NewProfileService creates a new profile service
func NewProfileService(scorer *scoring.Scorer, submissionRepo repository.SubmissionRepo) *ProfileService {
	profiles, _ := lru.New[string, *model.Profile](defaultProfileCacheSize)
	return &ProfileService{
		scorer:         scorer,
		submissionRepo: submissionRepo,
		profiles:       profiles,
	}
}

// Evaluate scores a complete response set without storing anything
func (s *ProfileService) Evaluate(responses []model.Response) (*model.Profile, error) {
	return s.scorer.Evaluate(responses)
}

// ForSubmission recomputes the profile of a stored submission
func (s *ProfileService) ForSubmission(ctx context.Context, id string) (*model.Profile, error) {
	if profile, ok := s.profiles.Get(id); ok {
		return profile, nil
	}

	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	profile, err := s.scorer.Evaluate(sub.Responses)
	if err != nil {
		return nil, err
	}
	s.profiles.Add(id, profile)
	return profile, nil
}
