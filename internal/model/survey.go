package model

// Construct is one of the four latent dimensions the survey measures
type Construct string

const (
	ConstructFit          Construct = "Perceived Fit"
	ConstructTransparency Construct = "Algorithmic Transparency"
	ConstructResonance    Construct = "Emotional Resonance"
	ConstructAgency       Construct = "Agency & Trust"
)

// AllConstructs returns the constructs in display order
func AllConstructs() []Construct {
	return []Construct{ConstructFit, ConstructTransparency, ConstructResonance, ConstructAgency}
}

// Valid reports whether c is one of the four known constructs
func (c Construct) Valid() bool {
	switch c {
	case ConstructFit, ConstructTransparency, ConstructResonance, ConstructAgency:
		return true
	}
	return false
}

// ConstructScores holds per-construct averages on the 1-7 scale
type ConstructScores struct {
	Fit          float64 `json:"perceivedFit"`
	Transparency float64 `json:"algorithmicTransparency"`
	Resonance    float64 `json:"emotionalResonance"`
	Agency       float64 `json:"agencyTrust"`
}

// Get returns the score for a construct (0 for unknown constructs)
func (s ConstructScores) Get(c Construct) float64 {
	switch c {
	case ConstructFit:
		return s.Fit
	case ConstructTransparency:
		return s.Transparency
	case ConstructResonance:
		return s.Resonance
	case ConstructAgency:
		return s.Agency
	}
	return 0
}

// Set assigns the score for a construct
func (s *ConstructScores) Set(c Construct, v float64) {
	switch c {
	case ConstructFit:
		s.Fit = v
	case ConstructTransparency:
		s.Transparency = v
	case ConstructResonance:
		s.Resonance = v
	case ConstructAgency:
		s.Agency = v
	}
}

// NormalizedScores holds per-construct scores rescaled to 0-100 for display
type NormalizedScores struct {
	Fit          int `json:"perceivedFit" yaml:"perceivedFit"`
	Transparency int `json:"algorithmicTransparency" yaml:"algorithmicTransparency"`
	Resonance    int `json:"emotionalResonance" yaml:"emotionalResonance"`
	Agency       int `json:"agencyTrust" yaml:"agencyTrust"`
}

// Get returns the normalized score for a construct
func (s NormalizedScores) Get(c Construct) int {
	switch c {
	case ConstructFit:
		return s.Fit
	case ConstructTransparency:
		return s.Transparency
	case ConstructResonance:
		return s.Resonance
	case ConstructAgency:
		return s.Agency
	}
	return 0
}

// Set assigns the normalized score for a construct
func (s *NormalizedScores) Set(c Construct, v int) {
	switch c {
	case ConstructFit:
		s.Fit = v
	case ConstructTransparency:
		s.Transparency = v
	case ConstructResonance:
		s.Resonance = v
	case ConstructAgency:
		s.Agency = v
	}
}

// ConstructDeltas is the signed gap between a respondent and the population baseline
type ConstructDeltas = NormalizedScores
