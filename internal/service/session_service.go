package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listenerlab/internal/cache"
	"listenerlab/internal/metrics"
	"listenerlab/internal/model"
	"listenerlab/internal/repository"
	"listenerlab/internal/scoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
)

// SessionService walks a respondent through the survey one question at a time
type SessionService struct {
	sessionCache   cache.SessionCache
	reportCache    cache.ReportCache
	segmentTally   cache.SegmentTallyCache
	submissionRepo repository.SubmissionRepo
	scorer         *scoring.Scorer
	authSvc        *AuthService
	surveySvc      *SurveyService
	recorder       *metrics.Recorder
	broadcaster    Broadcaster
	logger         *zap.Logger
	now            func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionCache cache.SessionCache,
	reportCache cache.ReportCache,
	submissionRepo repository.SubmissionRepo,
	scorer *scoring.Scorer,
	authSvc *AuthService,
	surveySvc *SurveyService,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		sessionCache:   sessionCache,
		reportCache:    reportCache,
		submissionRepo: submissionRepo,
		scorer:         scorer,
		authSvc:        authSvc,
		surveySvc:      surveySvc,
		recorder:       recorder,
		logger:         logger,
		now:            time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetSegmentTally sets the live persona tally sent with dashboard events
func (s *SessionService) SetSegmentTally(t cache.SegmentTallyCache) {
	s.segmentTally = t
}

// Start opens a new session and issues the respondent token for it
func (s *SessionService) Start(ctx context.Context) (*model.StartSessionResponse, error) {
	session := &model.Session{
		ID:        uuid.New().String(),
		Responses: map[int]int{},
		StartedAt: s.now().UTC(),
	}
	if err := s.sessionCache.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.authSvc.GenerateRespondentToken(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	resp := &model.StartSessionResponse{
		SessionID:  session.ID,
		Token:      token,
		TotalSteps: s.surveySvc.TotalSteps(),
	}
	if ids := s.scorer.Catalog().QuestionIDs(); len(ids) > 0 {
		resp.FirstQuestion, _ = s.surveySvc.Question(ids[0])
	}

	s.logger.Info("session started", zap.String("sessionId", session.ID))
	return resp, nil
}

// Get returns the session state
func (s *SessionService) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessionCache.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Answer records one response; the value is checked against the question's range
// before anything is stored. Answering the same question again overwrites it.
func (s *SessionService) Answer(ctx context.Context, sessionID string, questionID, value int) (*model.ProgressResponse, error) {
	response := model.Response{QuestionID: questionID, Value: value}
	if err := scoring.ValidateResponse(s.scorer.Catalog(), response); err != nil {
		return nil, err
	}

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, ErrSessionCompleted
	}

	if err := s.sessionCache.SetResponse(ctx, sessionID, questionID, value); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}
	session.Responses[questionID] = value

	return s.progress(session), nil
}

// Current returns the next unanswered question in catalog order
func (s *SessionService) Current(ctx context.Context, sessionID string) (*model.ProgressResponse, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.progress(session), nil
}

func (s *SessionService) progress(session *model.Session) *model.ProgressResponse {
	ids := s.scorer.Catalog().QuestionIDs()
	resp := &model.ProgressResponse{
		TotalSteps:  len(ids),
		IsCompleted: session.IsCompleted(),
	}
	for _, id := range ids {
		if _, ok := session.Responses[id]; ok {
			resp.Answered++
			continue
		}
		if resp.Question == nil {
			resp.Question, _ = s.surveySvc.Question(id)
		}
	}
	resp.Done = resp.Question == nil
	return resp
}

// Complete scores the session, stores the raw responses and notifies hosts.
// A session completes at most once; later calls return ErrSessionCompleted.
func (s *SessionService) Complete(ctx context.Context, sessionID string) (*model.CompleteSessionResponse, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, ErrSessionCompleted
	}

	responses := session.ResponseList(s.scorer.Catalog().QuestionIDs())
	profile, err := s.scorer.Evaluate(responses)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Responses: responses,
		CreatedAt: s.now().UTC(),
	}

	claimed, err := s.sessionCache.ClaimCompletion(ctx, sessionID, submission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim session: %w", err)
	}
	if !claimed {
		return nil, ErrSessionCompleted
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if relErr := s.sessionCache.ReleaseCompletion(ctx, sessionID); relErr != nil {
			s.logger.Warn("failed to release session claim", zap.String("sessionId", sessionID), zap.Error(relErr))
		}
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	if err := s.sessionCache.MarkCompleted(ctx, sessionID, submission.ID, submission.CreatedAt); err != nil {
		s.logger.Warn("failed to mark session completed", zap.String("sessionId", sessionID), zap.Error(err))
	}
	if err := s.reportCache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate population report", zap.Error(err))
	}

	s.recorder.ProfileCompleted(profile.Persona.ID)
	s.notifyHosts(ctx, submission.ID, profile)

	s.logger.Info("session completed",
		zap.String("sessionId", sessionID),
		zap.String("submissionId", submission.ID),
		zap.String("persona", string(profile.Persona.ID)),
	)

	return &model.CompleteSessionResponse{
		SubmissionID: submission.ID,
		Profile:      profile,
		Reveals:      s.surveySvc.Reveals(),
	}, nil
}

func (s *SessionService) notifyHosts(ctx context.Context, submissionID string, profile *model.Profile) {
	event := &ProfileCompletedEvent{
		SubmissionID: submissionID,
		PersonaID:    profile.Persona.ID,
		SegmentID:    profile.Persona.SegmentID,
		Normalized:   profile.Normalized,
	}

	if s.segmentTally != nil {
		if err := s.segmentTally.Increment(ctx, profile.Persona.ID); err != nil {
			s.logger.Warn("failed to update segment tally", zap.Error(err))
		} else if tally, err := s.segmentTally.Ranked(ctx); err == nil {
			event.Tally = tally
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToHosts(EventProfileCompleted, event)
	}
}
