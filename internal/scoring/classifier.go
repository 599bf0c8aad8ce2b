package scoring

import "listenerlab/internal/model"

// midpoint of the 1-7 scale; "high" means >= mid
const mid = 4.0

type personaRule struct {
	persona model.PersonaID
	match   func(s model.ConstructScores) bool
}

var personaRules = []personaRule{
	{model.PersonaAttuned, func(s model.ConstructScores) bool {
		return s.Fit >= mid && s.Resonance >= mid && s.Fit+s.Resonance >= s.Transparency+s.Agency
	}},
	{model.PersonaTransparent, func(s model.ConstructScores) bool {
		return s.Transparency >= mid && s.Agency >= mid && s.Transparency+s.Agency >= s.Fit+s.Resonance
	}},
	{model.PersonaSkeptical, func(s model.ConstructScores) bool {
		return s.Transparency < mid && s.Agency < mid
	}},
	{model.PersonaSurrendered, func(s model.ConstructScores) bool {
		return s.Fit >= mid && s.Transparency < mid
	}},
	{model.PersonaFeelingSeeker, func(s model.ConstructScores) bool {
		return s.Resonance >= mid && s.Fit < mid
	}},
}

// Classify picks exactly one persona for any score tuple
func Classify(s model.ConstructScores) model.PersonaID {
	for _, r := range personaRules {
		if r.match(s) {
			return r.persona
		}
	}
	return fallbackPersona(s)
}

// fallbackPersona takes the strongest candidate; earlier candidates win ties
func fallbackPersona(s model.ConstructScores) model.PersonaID {
	candidates := []struct {
		score   float64
		persona model.PersonaID
	}{
		{s.Fit + s.Resonance, model.PersonaAttuned},
		{s.Transparency + s.Agency, model.PersonaTransparent},
		{s.Resonance, model.PersonaFeelingSeeker},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return best.persona
}
