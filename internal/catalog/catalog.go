// Package catalog holds the survey's read-only reference data: the question
// catalog, the persona catalog and the population baseline.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"listenerlab/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

var (
	ErrDuplicateQuestion  = errors.New("duplicate question id")
	ErrUnknownConstruct   = errors.New("unknown construct")
	ErrUncoveredConstruct = errors.New("construct has no questions")
	ErrInvalidRange       = errors.New("invalid scale range")
	ErrPersonaSet         = errors.New("persona catalog must define each persona exactly once")
)

// Catalog is immutable after Parse. Accessors hand out copies.
type Catalog struct {
	questions []model.Question
	byID      map[int]int // question id -> index
	personas  map[model.PersonaID]model.Persona
	baseline  model.NormalizedScores
}

type rawQuestion struct {
	ID         int             `yaml:"id"`
	Construct  model.Construct `yaml:"construct"`
	Text       string          `yaml:"text"`
	ScaleLeft  string          `yaml:"scaleLeft"`
	ScaleRight string          `yaml:"scaleRight"`
	LatentNote string          `yaml:"latentNote"`
	ScaleRange []int           `yaml:"scaleRange"`
}

type rawCatalog struct {
	Questions []rawQuestion          `yaml:"questions"`
	Personas  []model.Persona        `yaml:"personas"`
	Baseline  model.NormalizedScores `yaml:"baseline"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed once per process
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(embedded)
	})
	return defaultCat, defaultErr
}

// MustDefault is Default for program init; it panics on a broken embedded catalog
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Parse decodes and validates a catalog document
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		byID:     make(map[int]int, len(raw.Questions)),
		personas: make(map[model.PersonaID]model.Persona, len(raw.Personas)),
		baseline: raw.Baseline,
	}

	for _, rq := range raw.Questions {
		q := model.Question{
			ID:         rq.ID,
			Construct:  rq.Construct,
			Text:       rq.Text,
			ScaleLeft:  rq.ScaleLeft,
			ScaleRight: rq.ScaleRight,
			LatentNote: rq.LatentNote,
		}
		if rq.ScaleRange != nil {
			if len(rq.ScaleRange) != 2 {
				return nil, fmt.Errorf("question %d: %w: want [min, max]", rq.ID, ErrInvalidRange)
			}
			q.ScaleRange = &[2]int{rq.ScaleRange[0], rq.ScaleRange[1]}
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("question %d: %w", q.ID, ErrDuplicateQuestion)
		}
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}

	for _, p := range raw.Personas {
		if _, dup := c.personas[p.ID]; dup {
			return nil, fmt.Errorf("persona %q: %w", p.ID, ErrPersonaSet)
		}
		c.personas[p.ID] = p
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the structural invariants the scoring core relies on
func (c *Catalog) Validate() error {
	covered := make(map[model.Construct]int)
	for _, q := range c.questions {
		if !q.Construct.Valid() {
			return fmt.Errorf("question %d: %w %q", q.ID, ErrUnknownConstruct, q.Construct)
		}
		min, max := q.Range()
		if min >= max {
			return fmt.Errorf("question %d: %w [%d, %d]", q.ID, ErrInvalidRange, min, max)
		}
		covered[q.Construct]++
	}
	for _, con := range model.AllConstructs() {
		if covered[con] == 0 {
			return fmt.Errorf("%w: %s", ErrUncoveredConstruct, con)
		}
	}

	if len(c.personas) != len(model.AllPersonaIDs()) {
		return fmt.Errorf("%w: got %d", ErrPersonaSet, len(c.personas))
	}
	for _, id := range model.AllPersonaIDs() {
		if _, ok := c.personas[id]; !ok {
			return fmt.Errorf("%w: missing %q", ErrPersonaSet, id)
		}
	}
	return nil
}

// Questions returns the questions in survey order
func (c *Catalog) Questions() []model.Question {
	out := make([]model.Question, len(c.questions))
	for i, q := range c.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// QuestionIDs returns question ids in survey order
func (c *Catalog) QuestionIDs() []int {
	ids := make([]int, len(c.questions))
	for i, q := range c.questions {
		ids[i] = q.ID
	}
	return ids
}

// Question looks up a question by id
func (c *Catalog) Question(id int) (model.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Question{}, false
	}
	return cloneQuestion(c.questions[i]), true
}

// cloneQuestion detaches the ScaleRange pointer from the catalog's copy
func cloneQuestion(q model.Question) model.Question {
	if q.ScaleRange != nil {
		r := *q.ScaleRange
		q.ScaleRange = &r
	}
	return q
}

// Len is the number of questions in a complete response set
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Persona returns the persona record for id
func (c *Catalog) Persona(id model.PersonaID) (model.Persona, bool) {
	p, ok := c.personas[id]
	return p, ok
}

// Personas returns all personas in segment order
func (c *Catalog) Personas() []model.Persona {
	out := make([]model.Persona, 0, len(c.personas))
	for _, id := range model.AllPersonaIDs() {
		out = append(out, c.personas[id])
	}
	return out
}

// Baseline returns the population baseline on the 0-100 scale
func (c *Catalog) Baseline() model.NormalizedScores {
	return c.baseline
}
