package scoring

import "listenerlab/internal/model"

// MaxInsights caps the list returned by GenerateInsights
const MaxInsights = 3

type insightRule struct {
	match   func(s model.ConstructScores) bool
	insight model.Insight
}

var insightRules = []insightRule{
	{
		match: func(s model.ConstructScores) bool { return s.Fit >= 5 && s.Transparency <= 3 },
		insight: model.Insight{
			Title: "The Trust Paradox",
			Body:  "High Perceived Fit with low Transparency flags a product risk: satisfaction without understanding is fragile. One bad recommendation erodes trust disproportionately because the user has no mental model to explain a miss. Product implication: this segment needs explainability features most urgently.",
		},
	},
	{
		match: func(s model.ConstructScores) bool { return s.Resonance >= 5 },
		insight: model.Insight{
			Title: "Affect Over Accuracy",
			Body:  "Emotional Resonance as the dominant dimension means this listener's retention driver isn't functional accuracy — it's affective peak experiences. Product implication: mood-aware recommendation and contextual framing (Daylist naming, time-of-day tuning) will move engagement metrics more than algorithm precision for this segment.",
		},
	},
	{
		match: func(s model.ConstructScores) bool { return s.Agency <= 3 && s.Fit >= 4 },
		insight: model.Insight{
			Title: "The Feedback Gap",
			Body:  "The algorithm delivers but feels one-directional. Low Agency despite adequate Fit signals that feedback mechanisms are invisible or untrusted. Product implication: post-skip disambiguation (\"not now\" vs. \"not ever\") and visible learning signals (\"we noticed you skipped jazz this week\") would close this gap.",
		},
	},
	{
		match: func(s model.ConstructScores) bool { return s.Transparency >= 5 && s.Agency >= 5 },
		insight: model.Insight{
			Title: "The Collaborator Profile",
			Body:  "High Transparency and Agency scores identify the ideal early adopter for co-creation features — playlist co-piloting, taste profile editing, recommendation tuning dials. Product implication: this segment will generate the highest engagement with any feature that surfaces algorithmic reasoning or grants control.",
		},
	},
	{
		match: func(s model.ConstructScores) bool { return s.Resonance <= 3 && s.Fit >= 4 },
		insight: model.Insight{
			Title: "Functional, Not Magical",
			Body:  "Accurate but emotionally flat — the algorithm is a utility, not a discovery engine. Product implication: this segment has hit the ceiling of genre-matching accuracy. The next value frontier is contextual personalization (mood, moment, activity) that creates affective peaks.",
		},
	},
	{
		match: func(s model.ConstructScores) bool { return s.Fit <= 3 && s.Resonance <= 3 },
		insight: model.Insight{
			Title: "The Perception Deficit",
			Body:  "Low Fit and Resonance together could signal a genuine accuracy problem or a perception problem — the algorithm may perform better than it feels. Product implication: A/B test surfacing \"why this was recommended\" explanations to determine whether perception closes the gap without algorithm changes.",
		},
	},
	{
		match: func(s model.ConstructScores) bool { return s.Transparency <= 3 && s.Agency <= 3 },
		insight: model.Insight{
			Title: "The Black Box Problem",
			Body:  "Low Transparency and Agency together indicate maximum perceived opacity. Product implication: this is the strongest signal for investment in explainability infrastructure — not as a feature request, but as a trust architecture problem that affects long-term retention.",
		},
	},
}

// fallbackInsights are used when no threshold rule fires
var fallbackInsights = []model.Insight{
	{
		Title: "A Balanced Profile",
		Body:  "Even scores across all four dimensions — no single construct dominates. Product implication: this is the hardest segment to design for because there's no single lever to pull. Broad personalization improvements will move this segment incrementally; targeted interventions need to be identified through behavioral data pairing.",
	},
	{
		Title: "The Middle Ground",
		Body:  "Moderate scores indicate personalization is working 'well enough' — functional but not remarkable. Product implication: the research question for this segment is what would make it remarkable. Qualitative follow-up (diary studies, in-depth interviews) would surface the missing variable.",
	},
}

// GenerateInsights returns between 1 and MaxInsights observations, in rule order
func GenerateInsights(s model.ConstructScores) []model.Insight {
	var out []model.Insight
	for _, r := range insightRules {
		if r.match(s) {
			out = append(out, r.insight)
		}
	}
	if len(out) == 0 {
		out = append(out, fallbackInsights...)
	}
	if len(out) > MaxInsights {
		out = out[:MaxInsights]
	}
	return out
}
