package model

// PersonaID identifies one of the five listener segments
type PersonaID string

const (
	PersonaAttuned       PersonaID = "attuned"
	PersonaTransparent   PersonaID = "transparent"
	PersonaSkeptical     PersonaID = "skeptical"
	PersonaSurrendered   PersonaID = "surrendered"
	PersonaFeelingSeeker PersonaID = "feeling_seeker"
)

// AllPersonaIDs returns the persona ids in segment order
func AllPersonaIDs() []PersonaID {
	return []PersonaID{PersonaAttuned, PersonaTransparent, PersonaSkeptical, PersonaSurrendered, PersonaFeelingSeeker}
}

// Persona is a listener type record. Reference data, never derived per request.
type Persona struct {
	ID                  PersonaID `json:"id" yaml:"id"`
	Name                string    `json:"name" yaml:"name"`
	Pattern             string    `json:"pattern" yaml:"pattern"`
	Description         string    `json:"description" yaml:"description"`
	SegmentID           string    `json:"segmentId" yaml:"segmentId"`
	PopulationPct       string    `json:"populationPct" yaml:"populationPct"`
	ProductRouting      string    `json:"productRouting" yaml:"productRouting"`
	InternalDescription string    `json:"internalDescription" yaml:"internalDescription"`
}

// SegmentView is a persona in the typology listing
type SegmentView struct {
	Persona
	Active bool `json:"active"`
}

// Insight is a templated observation selected by score thresholds
type Insight struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
