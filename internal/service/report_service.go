package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"listenerlab/internal/cache"
	"listenerlab/internal/model"
	"listenerlab/internal/repository"
	"listenerlab/internal/scoring"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportService aggregates stored submissions into the host population report
type ReportService struct {
	submissionRepo repository.SubmissionRepo
	reportCache    cache.ReportCache
	scorer         *scoring.Scorer
	sampleLimit    int64
	logger         *zap.Logger
	now            func() time.Time
}

// NewReportService creates a new report service; sampleLimit <= 0 scores every submission
func NewReportService(
	submissionRepo repository.SubmissionRepo,
	reportCache cache.ReportCache,
	scorer *scoring.Scorer,
	sampleLimit int,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		submissionRepo: submissionRepo,
		reportCache:    reportCache,
		scorer:         scorer,
		sampleLimit:    int64(sampleLimit),
		logger:         logger,
		now:            time.Now,
	}
}

// Population returns the cached report or rebuilds it from the newest submissions
func (s *ReportService) Population(ctx context.Context) (*model.PopulationReport, error) {
	cached, err := s.reportCache.GetPopulation(ctx)
	if err != nil {
		s.logger.Warn("failed to read cached population report", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	var (
		submissions []*model.Submission
		total       int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		submissions, err = s.submissionRepo.List(gctx, s.sampleLimit)
		if err != nil {
			return fmt.Errorf("failed to list submissions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.submissionRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count submissions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := s.build(submissions, total)
	if err := s.reportCache.SetPopulation(ctx, report); err != nil {
		s.logger.Warn("failed to cache population report", zap.Error(err))
	}
	return report, nil
}

func (s *ReportService) build(submissions []*model.Submission, total int64) *model.PopulationReport {
	cat := s.scorer.Catalog()
	counts := make(map[model.PersonaID]int)
	var sums [4]float64
	sampled := 0

	for _, sub := range submissions {
		profile, err := s.scorer.Evaluate(sub.Responses)
		if err != nil {
			s.logger.Warn("skipping unscorable submission", zap.String("submissionId", sub.ID), zap.Error(err))
			continue
		}
		sampled++
		counts[profile.Persona.ID]++
		for i, c := range model.AllConstructs() {
			sums[i] += float64(profile.Normalized.Get(c))
		}
	}

	report := &model.PopulationReport{
		TotalRespondents: total,
		SampledCount:     sampled,
		Segments:         make([]model.SegmentShare, 0, len(cat.Personas())),
		Baseline:         cat.Baseline(),
		GeneratedAt:      s.now().UTC(),
	}
	if total < int64(sampled) {
		report.TotalRespondents = int64(sampled)
	}

	for _, p := range cat.Personas() {
		share := model.SegmentShare{
			PersonaID: p.ID,
			SegmentID: p.SegmentID,
			Name:      p.Name,
			Count:     counts[p.ID],
		}
		if sampled > 0 {
			share.Share = float64(share.Count) / float64(sampled)
		}
		report.Segments = append(report.Segments, share)
	}

	if sampled > 0 {
		for i, c := range model.AllConstructs() {
			report.MeanNormalized.Set(c, int(math.Round(sums[i]/float64(sampled))))
		}
	}
	return report
}
