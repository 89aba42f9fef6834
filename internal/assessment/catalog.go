// Package assessment implements the crisis risk assessment and triage engine.
//
// The engine is a pure, deterministic computation: a validated response set
// goes through weighted scoring, risk pattern detection, and a four-tier
// severity classifier. No I/O, no logging, no shared mutable state; the only
// package-level state is the immutable question catalog.
package assessment

import (
	"fmt"

	_ "embed"

	"github.com/carelink/crisistriage/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// catalogFile matches the embedded YAML document layout.
type catalogFile struct {
	Questions []models.AssessmentQuestion `yaml:"questions"`
}

var (
	catalog      []models.AssessmentQuestion
	catalogIndex map[string]models.AssessmentQuestion
)

// init parses and verifies the embedded catalog. A malformed catalog is a
// build defect, not a runtime condition, so failure here panics at startup.
func init() {
	var err error
	catalog, catalogIndex, err = loadCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("assessment: invalid embedded question catalog: %v", err))
	}
}

// loadCatalog parses catalog YAML and checks the structural invariants the
// scorer relies on: unique ids, known kinds, positive weights, and dependency
// parents that appear earlier in catalog order.
func loadCatalog(data []byte) ([]models.AssessmentQuestion, map[string]models.AssessmentQuestion, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, nil, fmt.Errorf("catalog contains no questions")
	}

	index := make(map[string]models.AssessmentQuestion, len(f.Questions))
	for _, q := range f.Questions {
		if q.ID == "" {
			return nil, nil, fmt.Errorf("catalog question with empty id")
		}
		if _, exists := index[q.ID]; exists {
			return nil, nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if !models.IsValidQuestionKind(q.Kind) {
			return nil, nil, fmt.Errorf("question %q: unknown kind %q", q.ID, q.Kind)
		}
		if q.Weight <= 0 {
			return nil, nil, fmt.Errorf("question %q: weight must be positive", q.ID)
		}
		if q.DependsOn != "" {
			if _, ok := index[q.DependsOn]; !ok {
				return nil, nil, fmt.Errorf("question %q: depends_on %q not defined earlier in catalog", q.ID, q.DependsOn)
			}
		}
		index[q.ID] = q
	}
	return f.Questions, index, nil
}

// Catalog returns the ordered question catalog. Callers must treat the
// returned slice as read-only.
func Catalog() []models.AssessmentQuestion {
	return catalog
}

// QuestionByID looks up a catalog question by id.
func QuestionByID(id string) (models.AssessmentQuestion, bool) {
	q, ok := catalogIndex[id]
	return q, ok
}

// dependencySatisfied reports whether the question's full dependency chain is
// satisfied by the response set: every ancestor must be answered with a
// non-zero value. Questions without dependencies are always satisfied.
func dependencySatisfied(responses models.ResponseSet, q models.AssessmentQuestion) bool {
	for q.DependsOn != "" {
		parent, ok := catalogIndex[q.DependsOn]
		if !ok {
			return false
		}
		v, answered := responses[parent.ID]
		if !answered || v == 0 {
			return false
		}
		q = parent
	}
	return true
}
