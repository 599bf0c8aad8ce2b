package scoring

import (
	"listenerlab/internal/catalog"
	"listenerlab/internal/model"
)

// Observer is told about states the catalog should make unreachable
type Observer interface {
	EmptyConstruct(c model.Construct)
}

type nopObserver struct{}

func (nopObserver) EmptyConstruct(model.Construct) {}

// Aggregate averages normalized answers per construct. Responses for unknown
// questions are ignored. A construct without responses scores 0 and is
// reported to obs (which may be nil).
func Aggregate(cat *catalog.Catalog, responses []model.Response, obs Observer) model.ConstructScores {
	if obs == nil {
		obs = nopObserver{}
	}

	sums := make(map[model.Construct]float64, 4)
	counts := make(map[model.Construct]int, 4)
	for _, r := range responses {
		q, ok := cat.Question(r.QuestionID)
		if !ok {
			continue
		}
		sums[q.Construct] += NormalizeValue(q, r.Value)
		counts[q.Construct]++
	}

	var scores model.ConstructScores
	for _, c := range model.AllConstructs() {
		n := counts[c]
		if n == 0 {
			obs.EmptyConstruct(c)
			continue
		}
		scores.Set(c, sums[c]/float64(n))
	}
	return scores
}
