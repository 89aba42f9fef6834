package assessment

import "github.com/carelink/crisistriage/internal/models"

// Severity percentage thresholds for the decision tree tiers.
const (
	criticalPercentage    = 95
	highPercentage        = 80
	mediumPercentage      = 60
	elevatedLowPercentage = 30
	// criticalFactorLimit is the number of independent critical hits that
	// forces the critical tier regardless of score.
	criticalFactorLimit = 3
)

// Recommended action lists per tier, most urgent first.
var (
	criticalActions = []string{
		"Call the 988 Suicide & Crisis Lifeline or local emergency services immediately",
		"Remove access to any means of self-harm",
		"Maintain continuous supervision until professional help arrives",
		"Contact the emergency support network now",
	}
	highActions = []string{
		"Contact a crisis hotline as soon as possible",
		"Go to the nearest emergency room or call 911 if thoughts intensify",
		"Reach out to a trusted person right away",
		"Create an immediate safety plan",
	}
	mediumActions = []string{
		"Text a crisis text line to talk things through",
		"Activate your existing safety plan",
		"Schedule an urgent counseling appointment",
		"Inform a trusted contact about how you are feeling",
	}
	// elevatedLowActions is used when the score percentage reaches 30 even
	// though no tier condition matched.
	elevatedLowActions = []string{
		"Practice structured self-care today",
		"Use the coping strategies that have worked for you",
		"Schedule a routine therapy session",
		"Monitor your mood daily and reassess",
	}
	lowActions = []string{
		"Keep up regular self-care",
		"Keep practicing coping strategies",
		"Schedule a routine therapy check-in",
		"Continue monitoring your mood",
	}
)

// contextualRule appends a compound-risk label when its condition holds.
// Contextual rules never change the selected tier.
type contextualRule struct {
	Label   string
	Applies func(models.ResponseSet) bool
}

// contextualRules are the six compound-risk annotations evaluated after tier
// selection, each independently.
var contextualRules = []contextualRule{
	{
		Label: "Substance use with suicidal ideation compounds risk",
		Applies: func(r models.ResponseSet) bool {
			return answeredEquals(r, QuestionSubstanceUse, 1) && answeredEquals(r, QuestionSelfHarmThoughts, 1)
		},
	},
	{
		Label: "History of previous attempts with current ideation",
		Applies: func(r models.ResponseSet) bool {
			return answeredEquals(r, QuestionPreviousAttempts, 1) && answeredEquals(r, QuestionSelfHarmThoughts, 1)
		},
	},
	{
		Label: "Severely overwhelmed without available support",
		Applies: func(r models.ResponseSet) bool {
			return answeredAtLeast(r, QuestionOverwhelmLevel, 4) && answeredEquals(r, QuestionSupportAvailable, 0)
		},
	},
	{
		Label: "Feeling unsafe without available support",
		Applies: func(r models.ResponseSet) bool {
			return answeredAtMost(r, QuestionSafety, 2) && answeredEquals(r, QuestionSupportAvailable, 0)
		},
	},
	{
		Label: "Severe hopelessness with active ideation",
		Applies: func(r models.ResponseSet) bool {
			return answeredAtLeast(r, QuestionHopelessness, 4) && answeredEquals(r, QuestionSelfHarmThoughts, 1)
		},
	},
	{
		Label: "Substance use heightens impulsivity risk",
		Applies: func(r models.ResponseSet) bool {
			return answeredEquals(r, QuestionSubstanceUse, 1) && answeredEquals(r, QuestionImpulsivity, 1)
		},
	},
}

// Classification is the severity classifier's output.
type Classification struct {
	Severity           models.Severity
	RecommendedActions []string
	RequiresImmediate  bool
	ContextualFactors  []string
}

// Classify runs the four-tier decision tree top-down over the raw responses,
// the severity percentage, and the critical factor count. The first matching
// tier wins. Tier conditions read raw responses directly: an answered
// self-harm-means=1 forces the critical tier even when the scorer excluded
// that answer for an unsatisfied dependency.
func Classify(responses models.ResponseSet, severityPercentage float64, criticalFactorCount int) Classification {
	c := Classification{ContextualFactors: []string{}}

	// Action lists are copied so callers can safely append to the result.
	switch {
	case isCriticalTier(responses, severityPercentage, criticalFactorCount):
		c.Severity = models.SeverityCritical
		c.RecommendedActions = append([]string(nil), criticalActions...)
		c.RequiresImmediate = true
	case isHighTier(responses, severityPercentage):
		c.Severity = models.SeverityHigh
		c.RecommendedActions = append([]string(nil), highActions...)
		c.RequiresImmediate = true
	case isMediumTier(responses, severityPercentage):
		c.Severity = models.SeverityMedium
		c.RecommendedActions = append([]string(nil), mediumActions...)
	case severityPercentage >= elevatedLowPercentage:
		c.Severity = models.SeverityLow
		c.RecommendedActions = append([]string(nil), elevatedLowActions...)
	default:
		c.Severity = models.SeverityLow
		c.RecommendedActions = append([]string(nil), lowActions...)
	}

	for _, rule := range contextualRules {
		if rule.Applies(responses) {
			c.ContextualFactors = append(c.ContextualFactors, rule.Label)
		}
	}
	return c
}

func isCriticalTier(r models.ResponseSet, pct float64, criticalCount int) bool {
	return answeredEquals(r, QuestionSelfHarmMeans, 1) ||
		(answeredEquals(r, QuestionSelfHarmPlan, 1) && answeredEquals(r, QuestionSelfHarmThoughts, 1)) ||
		(answeredEquals(r, QuestionImpulsivity, 1) && answeredEquals(r, QuestionSelfHarmThoughts, 1)) ||
		(answeredAtMost(r, QuestionSafety, 1) && answeredEquals(r, QuestionSelfHarmThoughts, 1)) ||
		criticalCount >= criticalFactorLimit ||
		pct >= criticalPercentage
}

func isHighTier(r models.ResponseSet, pct float64) bool {
	return (answeredEquals(r, QuestionSelfHarmThoughts, 1) && answeredAtLeast(r, QuestionHopelessness, 4)) ||
		(answeredEquals(r, QuestionPreviousAttempts, 1) && answeredEquals(r, QuestionSelfHarmThoughts, 1)) ||
		(answeredEquals(r, QuestionSubstanceUse, 1) && answeredEquals(r, QuestionSelfHarmThoughts, 1)) ||
		(answeredAtLeast(r, QuestionOverwhelmLevel, 5) && answeredEquals(r, QuestionSupportAvailable, 0)) ||
		pct >= highPercentage
}

func isMediumTier(r models.ResponseSet, pct float64) bool {
	return answeredEquals(r, QuestionSelfHarmThoughts, 1) ||
		answeredAtLeast(r, QuestionHopelessness, 4) ||
		(answeredAtLeast(r, QuestionOverwhelmLevel, 4) && answeredAtMost(r, QuestionSafety, 2)) ||
		(answeredEquals(r, QuestionPreviousAttempts, 1) && answeredAtLeast(r, QuestionOverwhelmLevel, 3)) ||
		pct >= mediumPercentage
}
