package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"listenerlab/internal/app"
	"listenerlab/internal/cache"
	"listenerlab/internal/catalog"
	"listenerlab/internal/config"
	"listenerlab/internal/logging"
	"listenerlab/internal/model"
	"listenerlab/internal/scoring"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedCount  int
	seedRandom int64
	seedDryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed MongoDB with random complete submissions",
	Long:  `Generates in-range answers for every catalog question and stores them as submissions, then drops the cached population report.`,
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.Flags().IntVarP(&seedCount, "count", "n", 50, "number of submissions to create")
	rootCmd.Flags().Int64Var(&seedRandom, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "print the persona mix without writing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	scorer := scoring.NewScorer(cat, nil)

	rng := rand.New(rand.NewSource(seedRandom))
	submissions := make([]*model.Submission, 0, seedCount)
	personas := make([]model.PersonaID, 0, seedCount)
	mix := make(map[model.PersonaID]int)
	for i := 0; i < seedCount; i++ {
		sub := randomSubmission(cat, rng, time.Now().UTC().Add(-time.Duration(i)*time.Minute))
		profile, err := scorer.Evaluate(sub.Responses)
		if err != nil {
			return fmt.Errorf("generated invalid submission: %w", err)
		}
		mix[profile.Persona.ID]++
		submissions = append(submissions, sub)
		personas = append(personas, profile.Persona.ID)
	}

	for _, id := range model.AllPersonaIDs() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", id, mix[id])
	}
	if seedDryRun {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	a, err := app.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if err := storeSeed(ctx, a.SubmissionRepo, a.SegmentTally, submissions, personas, logger); err != nil {
		return err
	}
	if err := a.ReportCache.Invalidate(ctx); err != nil {
		logger.Warn("failed to invalidate population report", zap.Error(err))
	}

	logger.Info("seeded submissions", zap.Int("count", len(submissions)), zap.String("db", cfg.MongoDB))
	return nil
}

type submissionCreator interface {
	Create(ctx context.Context, submission *model.Submission) error
}

// storeSeed inserts each submission and counts its persona in the live segment tally
func storeSeed(ctx context.Context, repo submissionCreator, tally cache.SegmentTallyCache, subs []*model.Submission, personas []model.PersonaID, logger *zap.Logger) error {
	for i, sub := range subs {
		if err := repo.Create(ctx, sub); err != nil {
			return fmt.Errorf("failed to insert submission: %w", err)
		}
		if err := tally.Increment(ctx, personas[i]); err != nil {
			logger.Warn("failed to update segment tally", zap.String("persona", string(personas[i])), zap.Error(err))
		}
	}
	return nil
}

// randomSubmission answers every catalog question with a uniform in-range value
func randomSubmission(cat *catalog.Catalog, rng *rand.Rand, at time.Time) *model.Submission {
	questions := cat.Questions()
	responses := make([]model.Response, 0, len(questions))
	for _, q := range questions {
		min, max := q.Range()
		responses = append(responses, model.Response{
			QuestionID: q.ID,
			Value:      min + rng.Intn(max-min+1),
		})
	}
	return &model.Submission{
		ID:        uuid.New().String(),
		SessionID: "seed-" + uuid.New().String()[:8],
		Responses: responses,
		CreatedAt: at,
	}
}
