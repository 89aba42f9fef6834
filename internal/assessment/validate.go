package assessment

import (
	"fmt"
	"sort"

	"github.com/carelink/crisistriage/internal/models"
)

// ValidateResponses checks a response set against the question catalog.
//
// Each present response must reference a known question and fall within the
// kind's allowed range: 1-5 for scale questions, 0 or 1 for binary questions.
// Out-of-range values are rejected, never clamped. A dependent question whose
// parent is unsatisfied is NOT an error; the scorer silently excludes it.
// An empty response set is valid.
func ValidateResponses(responses models.ResponseSet) error {
	// Walk the catalog first so the reported error is deterministic
	// regardless of map iteration order.
	for _, q := range Catalog() {
		v, ok := responses[q.ID]
		if !ok {
			continue
		}
		switch q.Kind {
		case models.QuestionKindScale:
			if v < models.ScaleMin || v > models.ScaleMax {
				return models.NewValidationError(q.ID, fmt.Sprintf("scale response must be between %d and %d, got %d", models.ScaleMin, models.ScaleMax, v))
			}
		case models.QuestionKindBinary:
			if v != models.BinaryMin && v != models.BinaryMax {
				return models.NewValidationError(q.ID, fmt.Sprintf("binary response must be 0 or 1, got %d", v))
			}
		}
	}

	// Reject ids that are not in the catalog. Sorted so the first offender
	// reported is stable across runs.
	var unknown []string
	for id := range responses {
		if _, ok := QuestionByID(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return models.NewValidationError(unknown[0], models.ErrUnknownQuestion.Error())
	}
	return nil
}
