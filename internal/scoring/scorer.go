package scoring

import (
	"fmt"

	"listenerlab/internal/catalog"
	"listenerlab/internal/model"
)

// Scorer runs the full pipeline against one catalog. Safe for concurrent use.
type Scorer struct {
	cat *catalog.Catalog
	obs Observer
}

// NewScorer creates a scorer; obs may be nil
func NewScorer(cat *catalog.Catalog, obs Observer) *Scorer {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Scorer{cat: cat, obs: obs}
}

// Catalog returns the catalog the scorer validates against
func (s *Scorer) Catalog() *catalog.Catalog {
	return s.cat
}

// Evaluate validates a complete response set and derives its profile
func (s *Scorer) Evaluate(responses []model.Response) (*model.Profile, error) {
	if err := Validate(s.cat, responses); err != nil {
		return nil, err
	}
	return s.profile(Aggregate(s.cat, responses, s.obs))
}

// FromScores derives persona, insights and display values from construct scores
func (s *Scorer) FromScores(scores model.ConstructScores) (*model.Profile, error) {
	return s.profile(scores)
}

func (s *Scorer) profile(scores model.ConstructScores) (*model.Profile, error) {
	id := Classify(scores)
	persona, ok := s.cat.Persona(id)
	if !ok {
		return nil, fmt.Errorf("persona %q missing from catalog", id)
	}

	normalized := Display(scores)
	baseline := s.cat.Baseline()
	return &model.Profile{
		Scores:     scores,
		Normalized: normalized,
		Persona:    persona,
		Insights:   GenerateInsights(scores),
		Baseline:   baseline,
		Deltas:     CompareBaseline(normalized, baseline),
	}, nil
}
