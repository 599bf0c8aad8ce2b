package scoring

import (
	"errors"
	"fmt"

	"listenerlab/internal/catalog"
	"listenerlab/internal/model"
)

var (
	ErrUnknownQuestion     = errors.New("unknown question")
	ErrValueOutOfRange     = errors.New("value out of range")
	ErrDuplicateResponse   = errors.New("duplicate response")
	ErrIncompleteResponses = errors.New("incomplete response set")
)

// IsInvalidInput reports whether err came from response validation
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrUnknownQuestion) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrDuplicateResponse) ||
		errors.Is(err, ErrIncompleteResponses)
}

// ValidateResponse checks a single answer against the catalog
func ValidateResponse(cat *catalog.Catalog, r model.Response) error {
	q, ok := cat.Question(r.QuestionID)
	if !ok {
		return fmt.Errorf("question %d: %w", r.QuestionID, ErrUnknownQuestion)
	}
	if !q.InRange(r.Value) {
		min, max := q.Range()
		return fmt.Errorf("question %d: %w: %d not in [%d, %d]", r.QuestionID, ErrValueOutOfRange, r.Value, min, max)
	}
	return nil
}

// Validate checks that responses form a complete set: one in-range answer
// for every catalog question and nothing else. All problems are reported.
func Validate(cat *catalog.Catalog, responses []model.Response) error {
	var errs []error
	seen := make(map[int]bool, len(responses))
	for _, r := range responses {
		if err := ValidateResponse(cat, r); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[r.QuestionID] {
			errs = append(errs, fmt.Errorf("question %d: %w", r.QuestionID, ErrDuplicateResponse))
			continue
		}
		seen[r.QuestionID] = true
	}

	for _, id := range cat.QuestionIDs() {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("question %d: %w", id, ErrIncompleteResponses))
		}
	}
	return errors.Join(errs...)
}
