package scoring

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"listenerlab/internal/catalog"
	"listenerlab/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responses(values ...int) []model.Response {
	out := make([]model.Response, len(values))
	for i, v := range values {
		out[i] = model.Response{QuestionID: i + 1, Value: v}
	}
	return out
}

func scores(fit, transparency, resonance, agency float64) model.ConstructScores {
	return model.ConstructScores{Fit: fit, Transparency: transparency, Resonance: resonance, Agency: agency}
}

type recordingObserver struct {
	mu    sync.Mutex
	empty []model.Construct
}

func (o *recordingObserver) EmptyConstruct(c model.Construct) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.empty = append(o.empty, c)
}

func TestNormalizeValue(t *testing.T) {
	cat := catalog.MustDefault()
	q1, _ := cat.Question(1)
	q2, _ := cat.Question(2)

	assert.Equal(t, 5.0, NormalizeValue(q1, 5))
	assert.InDelta(t, 1.0, NormalizeValue(q2, 0), 1e-9)
	assert.InDelta(t, 4.0, NormalizeValue(q2, 4), 1e-9)
	assert.InDelta(t, 7.0, NormalizeValue(q2, 8), 1e-9)
	assert.InDelta(t, 1.75, NormalizeValue(q2, 1), 1e-9)
}

func TestAggregate_Scenario(t *testing.T) {
	cat := catalog.MustDefault()
	got := Aggregate(cat, responses(7, 8, 7, 1, 7, 7, 1, 7), nil)

	assert.InDelta(t, 7.0, got.Fit, 1e-9)
	assert.InDelta(t, 4.0, got.Transparency, 1e-9)
	assert.InDelta(t, 7.0, got.Resonance, 1e-9)
	assert.InDelta(t, 4.0, got.Agency, 1e-9)
	assert.Equal(t, model.PersonaAttuned, Classify(got))
}

func TestAggregate_Midpoints(t *testing.T) {
	cat := catalog.MustDefault()
	got := Aggregate(cat, responses(4, 4, 4, 4, 4, 4, 4, 4), nil)

	assert.Equal(t, scores(4, 4, 4, 4), got)
	assert.Equal(t, model.NormalizedScores{Fit: 50, Transparency: 50, Resonance: 50, Agency: 50}, Display(got))
}

func TestAggregate_Idempotent(t *testing.T) {
	cat := catalog.MustDefault()
	rs := responses(3, 2, 6, 5, 1, 7, 2, 4)
	assert.Equal(t, Aggregate(cat, rs, nil), Aggregate(cat, rs, nil))
}

func TestAggregate_EmptyConstructFallsBackToZero(t *testing.T) {
	cat := catalog.MustDefault()
	obs := &recordingObserver{}

	// only Perceived Fit answered, plus one unknown id that must be skipped
	got := Aggregate(cat, []model.Response{{QuestionID: 1, Value: 6}, {QuestionID: 2, Value: 8}, {QuestionID: 42, Value: 3}}, obs)

	assert.InDelta(t, 6.5, got.Fit, 1e-9)
	assert.Zero(t, got.Transparency)
	assert.Zero(t, got.Resonance)
	assert.Zero(t, got.Agency)
	assert.ElementsMatch(t, []model.Construct{model.ConstructTransparency, model.ConstructResonance, model.ConstructAgency}, obs.empty)
}

func TestAggregate_BoundsForAllValidInputs(t *testing.T) {
	cat := catalog.MustDefault()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		rs := make([]model.Response, 0, cat.Len())
		for _, q := range cat.Questions() {
			min, max := q.Range()
			rs = append(rs, model.Response{QuestionID: q.ID, Value: min + rng.Intn(max-min+1)})
		}
		require.NoError(t, Validate(cat, rs))

		s := Aggregate(cat, rs, nil)
		n := Display(s)
		for _, c := range model.AllConstructs() {
			assert.GreaterOrEqual(t, s.Get(c), 1.0)
			assert.LessOrEqual(t, s.Get(c), 7.0)
			assert.GreaterOrEqual(t, n.Get(c), 0)
			assert.LessOrEqual(t, n.Get(c), 100)
		}
	}
}

func TestDisplay(t *testing.T) {
	got := Display(scores(1, 7, 4, 5.5))
	assert.Equal(t, model.NormalizedScores{Fit: 0, Transparency: 100, Resonance: 50, Agency: 75}, got)

	// 2.5 -> 25, 1.75 -> 12.5 rounds up to 13
	got = Display(scores(2.5, 1.75, 1, 1))
	assert.Equal(t, 25, got.Fit)
	assert.Equal(t, 13, got.Transparency)
}

func TestCompareBaseline(t *testing.T) {
	baseline := model.NormalizedScores{Fit: 62, Transparency: 38, Resonance: 51, Agency: 44}
	got := CompareBaseline(model.NormalizedScores{Fit: 100, Transparency: 0, Resonance: 51, Agency: 50}, baseline)
	assert.Equal(t, model.ConstructDeltas{Fit: 38, Transparency: -38, Resonance: 0, Agency: 6}, got)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		scores model.ConstructScores
		want   model.PersonaID
	}{
		{"all tie at midpoint resolves to attuned", scores(4, 4, 4, 4), model.PersonaAttuned},
		{"high fit and resonance", scores(6, 2, 6, 2), model.PersonaAttuned},
		{"high transparency and agency", scores(2, 6, 2, 6), model.PersonaTransparent},
		{"transparency pair outweighs fit pair", scores(4, 6, 4, 6), model.PersonaTransparent},
		{"low transparency and agency", scores(2, 3, 2, 3), model.PersonaSkeptical},
		{"high fit low transparency", scores(6, 3, 2, 5), model.PersonaSurrendered},
		{"high resonance low fit", scores(3, 5, 6, 3), model.PersonaFeelingSeeker},
		{"fallback favours transparency pair", scores(3, 5, 3, 3.5), model.PersonaTransparent},
		{"fallback tie goes to attuned", scores(3, 4, 3.5, 2.5), model.PersonaAttuned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.scores))
		})
	}
}

func TestFallbackPersona(t *testing.T) {
	assert.Equal(t, model.PersonaAttuned, fallbackPersona(scores(3, 3, 3, 3)))
	assert.Equal(t, model.PersonaTransparent, fallbackPersona(scores(1, 4, 2, 4)))
	// resonance alone beats both pairs only when the others are tiny
	assert.Equal(t, model.PersonaFeelingSeeker, fallbackPersona(scores(-5, 1, 3, 1)))
}

func TestClassify_Totality(t *testing.T) {
	valid := map[model.PersonaID]bool{}
	for _, id := range model.AllPersonaIDs() {
		valid[id] = true
	}

	rng := rand.New(rand.NewSource(42))
	draw := func() float64 { return 1 + rng.Float64()*6 }
	for i := 0; i < 10000; i++ {
		s := scores(draw(), draw(), draw(), draw())
		got := Classify(s)
		require.True(t, valid[got], "scores %+v produced %q", s, got)
	}
}

func TestGenerateInsights(t *testing.T) {
	titles := func(in []model.Insight) []string {
		out := make([]string, len(in))
		for i, x := range in {
			out[i] = x.Title
		}
		return out
	}

	tests := []struct {
		name   string
		scores model.ConstructScores
		want   []string
	}{
		{"midpoint tie uses fallbacks", scores(4, 4, 4, 4), []string{"A Balanced Profile", "The Middle Ground"}},
		{"scenario profile", scores(7, 4, 7, 4), []string{"Affect Over Accuracy"}},
		{"trust paradox only", scores(5, 3, 4, 4), []string{"The Trust Paradox"}},
		{
			"truncated to three in rule order",
			scores(6, 2, 2, 2),
			[]string{"The Trust Paradox", "The Feedback Gap", "Functional, Not Magical"},
		},
		{"collaborator", scores(4, 6, 4, 6), []string{"The Collaborator Profile"}},
		{"perception deficit and black box", scores(2, 2, 2, 2), []string{"The Perception Deficit", "The Black Box Problem"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(GenerateInsights(tt.scores)))
		})
	}
}

func TestGenerateInsights_Copy(t *testing.T) {
	got := GenerateInsights(scores(7, 4, 7, 4))
	require.Len(t, got, 1)
	assert.Equal(t, "Emotional Resonance as the dominant dimension means this listener's retention driver isn't functional accuracy — it's affective peak experiences. Product implication: mood-aware recommendation and contextual framing (Daylist naming, time-of-day tuning) will move engagement metrics more than algorithm precision for this segment.", got[0].Body)

	got = GenerateInsights(scores(4, 4, 4, 4))
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[0].Body, "Even scores across all four dimensions — no single construct dominates."))
	assert.Contains(t, got[1].Body, "personalization is working 'well enough' — functional but not remarkable")
}

func TestGenerateInsights_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	draw := func() float64 { return 1 + rng.Float64()*6 }
	for i := 0; i < 5000; i++ {
		got := GenerateInsights(scores(draw(), draw(), draw(), draw()))
		require.NotEmpty(t, got)
		require.LessOrEqual(t, len(got), MaxInsights)
	}
}

func TestValidate(t *testing.T) {
	cat := catalog.MustDefault()

	require.NoError(t, Validate(cat, responses(7, 8, 7, 1, 7, 7, 1, 7)))

	err := Validate(cat, responses(7, 9, 7, 1, 7, 7, 1, 7))
	assert.ErrorIs(t, err, ErrValueOutOfRange)
	assert.True(t, IsInvalidInput(err))

	err = Validate(cat, responses(0, 8, 7, 1, 7, 7, 1, 7))
	assert.ErrorIs(t, err, ErrValueOutOfRange, "Q1 keeps the default 1-7 range")

	err = Validate(cat, append(responses(7, 8, 7, 1, 7, 7, 1, 7), model.Response{QuestionID: 9, Value: 3}))
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	err = Validate(cat, append(responses(7, 8, 7, 1, 7, 7, 1, 7), model.Response{QuestionID: 3, Value: 2}))
	assert.ErrorIs(t, err, ErrDuplicateResponse)

	err = Validate(cat, responses(7, 8, 7))
	assert.ErrorIs(t, err, ErrIncompleteResponses)

	assert.False(t, IsInvalidInput(nil))
}

func TestScorer_Evaluate(t *testing.T) {
	scorer := NewScorer(catalog.MustDefault(), nil)

	p, err := scorer.Evaluate(responses(7, 8, 7, 1, 7, 7, 1, 7))
	require.NoError(t, err)
	assert.Equal(t, model.PersonaAttuned, p.Persona.ID)
	assert.Equal(t, "LP-01", p.Persona.SegmentID)
	assert.Equal(t, model.NormalizedScores{Fit: 100, Transparency: 50, Resonance: 100, Agency: 50}, p.Normalized)
	assert.Equal(t, model.ConstructDeltas{Fit: 38, Transparency: 12, Resonance: 49, Agency: 6}, p.Deltas)
	assert.Len(t, p.Insights, 1)

	_, err = scorer.Evaluate(responses(7, 8))
	assert.ErrorIs(t, err, ErrIncompleteResponses)
}

func TestScorer_ConcurrentUse(t *testing.T) {
	scorer := NewScorer(catalog.MustDefault(), nil)
	rs := responses(2, 1, 3, 2, 6, 6, 2, 3)
	want, err := scorer.Evaluate(rs)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := scorer.Evaluate(rs)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
