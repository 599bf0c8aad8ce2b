package model

import "time"

// Submission is a stored, complete response set. Only raw answers are persisted.
type Submission struct {
	ID        string     `json:"id" bson:"_id"`
	SessionID string     `json:"sessionId" bson:"sessionId"`
	Responses []Response `json:"responses" bson:"responses"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

// ScoreRequest is the body of a stateless scoring call
type ScoreRequest struct {
	Responses []Response `json:"responses"`
}
