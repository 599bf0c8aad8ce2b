package catalog

import (
	"testing"

	"listenerlab/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 8, c.Len())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, c.QuestionIDs())

	perConstruct := map[model.Construct]int{}
	for _, q := range c.Questions() {
		perConstruct[q.Construct]++
	}
	for _, con := range model.AllConstructs() {
		assert.Equal(t, 2, perConstruct[con], "construct %s", con)
	}

	q2, ok := c.Question(2)
	require.True(t, ok)
	min, max := q2.Range()
	assert.Equal(t, 0, min)
	assert.Equal(t, 8, max)

	q1, _ := c.Question(1)
	min, max = q1.Range()
	assert.Equal(t, 1, min)
	assert.Equal(t, 7, max)

	_, ok = c.Question(99)
	assert.False(t, ok)
}

func TestDefault_Personas(t *testing.T) {
	c := MustDefault()
	personas := c.Personas()
	require.Len(t, personas, 5)
	assert.Equal(t, "LP-01", personas[0].SegmentID)
	assert.Equal(t, "The Attuned Listener", personas[0].Name)
	assert.Equal(t, model.PersonaFeelingSeeker, personas[4].ID)

	p, ok := c.Persona(model.PersonaSurrendered)
	require.True(t, ok)
	assert.Equal(t, "~25%", p.PopulationPct)
}

func TestDefault_Baseline(t *testing.T) {
	b := MustDefault().Baseline()
	assert.Equal(t, model.NormalizedScores{Fit: 62, Transparency: 38, Resonance: 51, Agency: 44}, b)
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	c := MustDefault()
	qs := c.Questions()
	qs[0].Text = "mutated"
	q, _ := c.Question(1)
	assert.NotEqual(t, "mutated", q.Text)
}

func TestQuestions_ScaleRangeIsDetached(t *testing.T) {
	c := MustDefault()

	qs := c.Questions()
	require.NotNil(t, qs[1].ScaleRange)
	qs[1].ScaleRange[1] = 80

	q2, ok := c.Question(2)
	require.True(t, ok)
	require.NotNil(t, q2.ScaleRange)
	q2.ScaleRange[0] = 5

	fresh, _ := c.Question(2)
	min, max := fresh.Range()
	assert.Equal(t, 0, min)
	assert.Equal(t, 8, max)
	assert.True(t, fresh.InRange(0))
	assert.False(t, fresh.InRange(9))
}

func TestDefault_SourceCopy(t *testing.T) {
	c := MustDefault()

	q1, _ := c.Question(1)
	assert.Contains(t, q1.LatentNote, "perceived algorithmic accuracy — the surface-level construct")

	p, _ := c.Persona(model.PersonaSkeptical)
	assert.Equal(t, "You're not sure the algorithm is learning the right things — and that matters to you.", p.Description)

	p, _ = c.Persona(model.PersonaSurrendered)
	assert.Equal(t, "Largest segment. Satisfaction without understanding — fragile trust that erodes disproportionately on miss. One bad recommendation week triggers outsized dissatisfaction.", p.InternalDescription)
}

const personasYAML = `
personas:
  - {id: attuned, segmentId: LP-01}
  - {id: transparent, segmentId: LP-02}
  - {id: skeptical, segmentId: LP-03}
  - {id: surrendered, segmentId: LP-04}
  - {id: feeling_seeker, segmentId: LP-05}
`

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate question",
			doc: `questions:
  - {id: 1, construct: Perceived Fit}
  - {id: 1, construct: Emotional Resonance}
` + personasYAML,
			want: ErrDuplicateQuestion,
		},
		{
			name: "unknown construct",
			doc: `questions:
  - {id: 1, construct: Vibes}
` + personasYAML,
			want: ErrUnknownConstruct,
		},
		{
			name: "uncovered construct",
			doc: `questions:
  - {id: 1, construct: Perceived Fit}
  - {id: 2, construct: Algorithmic Transparency}
  - {id: 3, construct: Emotional Resonance}
` + personasYAML,
			want: ErrUncoveredConstruct,
		},
		{
			name: "inverted range",
			doc: `questions:
  - {id: 1, construct: Perceived Fit, scaleRange: [8, 0]}
  - {id: 2, construct: Algorithmic Transparency}
  - {id: 3, construct: Emotional Resonance}
  - {id: 4, construct: Agency & Trust}
` + personasYAML,
			want: ErrInvalidRange,
		},
		{
			name: "missing persona",
			doc: `questions:
  - {id: 1, construct: Perceived Fit}
  - {id: 2, construct: Algorithmic Transparency}
  - {id: 3, construct: Emotional Resonance}
  - {id: 4, construct: Agency & Trust}
personas:
  - {id: attuned}
`,
			want: ErrPersonaSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
