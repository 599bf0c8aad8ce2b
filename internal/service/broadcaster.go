package service

import (
	"listenerlab/internal/cache"
	"listenerlab/internal/model"
)

// Broadcaster pushes live events to connected host dashboards (avoids import cycle)
type Broadcaster interface {
	BroadcastToHosts(msgType string, payload interface{})
}

// Host dashboard event types
const (
	EventProfileCompleted = "profile_completed"
)

// ProfileCompletedEvent is pushed to hosts after a session completes
type ProfileCompletedEvent struct {
	SubmissionID string                 `json:"submissionId"`
	PersonaID    model.PersonaID        `json:"personaId"`
	SegmentID    string                 `json:"segmentId"`
	Normalized   model.NormalizedScores `json:"normalized"`
	Tally        []cache.SegmentTally   `json:"tally,omitempty"`
}
