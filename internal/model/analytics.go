package model

import "time"

// Profile is the derived result for one response set. Recomputed on demand, never stored.
type Profile struct {
	Scores     ConstructScores  `json:"scores"`
	Normalized NormalizedScores `json:"normalized"`
	Persona    Persona          `json:"persona"`
	Insights   []Insight        `json:"insights"`
	Baseline   NormalizedScores `json:"baseline"`
	Deltas     ConstructDeltas  `json:"deltas"`
}

// SegmentShare is one persona's slice of the population
type SegmentShare struct {
	PersonaID PersonaID `json:"personaId"`
	SegmentID string    `json:"segmentId"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	Share     float64   `json:"share"` // 0-1
}

// PopulationReport summarizes all stored submissions for the host
type PopulationReport struct {
	TotalRespondents int64            `json:"totalRespondents"`
	SampledCount     int              `json:"sampledCount"`
	Segments         []SegmentShare   `json:"segments"`
	MeanNormalized   NormalizedScores `json:"meanNormalized"`
	Baseline         NormalizedScores `json:"baseline"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}
