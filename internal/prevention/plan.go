// Package prevention generates personalized crisis prevention plans from
// risk and protective factors, optionally seeded with coping strategies that
// worked for the person during previous crises.
package prevention

import (
	"strings"

	"github.com/carelink/crisistriage/internal/models"
)

// Universal plan content included in every generated plan.
var (
	universalCopingStrategies = []string{
		"Slow breathing: inhale for 4, hold for 7, exhale for 8",
		"Grounding: name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste",
		"Take a short walk, even just around the room",
		"Call or message someone you trust",
		"Write down what you are feeling without editing it",
		"Splash cold water on your face or hold an ice cube",
		"Play a playlist that has calmed you before",
		"Tense and release each muscle group from toes to shoulders",
	}
	universalWarningSignals = []string{
		"Withdrawing from friends and family",
		"Sleeping much more or much less than usual",
		"Talking or writing about hopelessness",
		"Giving away possessions that matter to you",
		"Increased alcohol or drug use",
		"Sudden calm after a period of despair",
		"Losing interest in activities you usually enjoy",
	}
	universalSupportContacts = []string{
		"988 Suicide & Crisis Lifeline: call or text 988",
		"Crisis Text Line: text HOME to 741741",
		"Your therapist or counselor",
		"A trusted friend or family member",
		"Your local crisis center walk-in service",
	}
	universalPreventiveActions = []string{
		"Keep your daily routine as regular as you can",
		"Plan one small enjoyable activity for each day",
	}
)

// targetedRule adds plan content when a risk-factor label contains the
// keyword (case-insensitive).
type targetedRule struct {
	Keyword    string
	Preventive []string
	Coping     []string
}

var targetedRules = []targetedRule{
	{
		Keyword: "isolation",
		Preventive: []string{
			"Schedule regular check-ins with a friend or family member",
			"Join a peer support group, in person or online",
		},
		Coping: []string{"Reach out to one person today, even with a short message"},
	},
	{
		Keyword: "substance",
		Preventive: []string{
			"Arrange a consultation with a substance-use counselor",
			"Call the SAMHSA helpline (1-800-662-4357) for substance-use support",
		},
	},
	{
		Keyword:    "sleep",
		Preventive: []string{"Establish a consistent sleep and wake schedule"},
		Coping:     []string{"Wind down without screens for an hour before bed"},
	},
	{
		Keyword: "hopeless",
		Coping:  []string{"Write down three small things to look forward to tomorrow"},
	},
	{
		Keyword: "overwhelm",
		Coping:  []string{"Break what is in front of you into one small step at a time"},
	},
	{
		Keyword:    "unsafe",
		Preventive: []string{"Identify a safe place you can go to at short notice"},
	},
	{
		Keyword:    "ideation",
		Preventive: []string{"Keep crisis hotline numbers saved in your phone"},
	},
}

// GeneratePlan builds a four-part prevention plan from risk factors,
// protective factors, and optional prior crisis events.
//
// Coping strategies that previously worked for this person are placed first,
// followed by strategies targeted at the reported risk factors, then the
// universal set. Deduplication is stable: the first occurrence wins, so
// identical inputs always produce identically ordered output.
func GeneratePlan(riskFactors, protectiveFactors []string, priorEvents []models.CrisisEvent) models.PreventionPlan {
	plan := models.PreventionPlan{
		WarningSignals:    append([]string(nil), universalWarningSignals...),
		SupportContacts:   append([]string(nil), universalSupportContacts...),
		CopingStrategies:  []string{},
		PreventiveActions: []string{},
	}

	// Personally proven strategies surface first.
	plan.CopingStrategies = append(plan.CopingStrategies, provenStrategies(priorEvents)...)

	for _, rule := range targetedRules {
		if !anyFactorContains(riskFactors, rule.Keyword) {
			continue
		}
		plan.PreventiveActions = append(plan.PreventiveActions, rule.Preventive...)
		plan.CopingStrategies = append(plan.CopingStrategies, rule.Coping...)
	}

	if anyFactorContains(protectiveFactors, "support") {
		plan.PreventiveActions = append(plan.PreventiveActions,
			"Tell your support system specifically how they can help")
	}

	plan.CopingStrategies = append(plan.CopingStrategies, universalCopingStrategies...)
	plan.PreventiveActions = append(plan.PreventiveActions, universalPreventiveActions...)

	plan.CopingStrategies = dedupeStable(plan.CopingStrategies)
	plan.PreventiveActions = dedupeStable(plan.PreventiveActions)
	return plan
}

// provenStrategies extracts coping strategies from prior events in event
// order, deduplicated stably.
func provenStrategies(events []models.CrisisEvent) []string {
	var out []string
	for _, ev := range events {
		out = append(out, ev.CopingStrategiesUsed...)
	}
	return dedupeStable(out)
}

// anyFactorContains reports whether any factor contains the keyword,
// case-insensitively.
func anyFactorContains(factors []string, keyword string) bool {
	for _, f := range factors {
		if strings.Contains(strings.ToLower(f), keyword) {
			return true
		}
	}
	return false
}

// dedupeStable removes duplicates while preserving first-occurrence order.
func dedupeStable(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
