package model

import "time"

// Session is an in-progress respondent run through the survey
type Session struct {
	ID           string      `json:"id"`
	Responses    map[int]int `json:"responses"` // question id -> raw value
	StartedAt    time.Time   `json:"startedAt"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
	SubmissionID string      `json:"submissionId,omitempty"`
}

// IsCompleted reports whether the session has been scored and stored
func (s *Session) IsCompleted() bool {
	return s.CompletedAt != nil
}

// ResponseList flattens the answers ordered by the given question ids.
// Unanswered questions are omitted.
func (s *Session) ResponseList(order []int) []Response {
	out := make([]Response, 0, len(s.Responses))
	for _, id := range order {
		if v, ok := s.Responses[id]; ok {
			out = append(out, Response{QuestionID: id, Value: v})
		}
	}
	return out
}

// StartSessionResponse is returned when a respondent begins the survey
type StartSessionResponse struct {
	SessionID     string    `json:"sessionId"`
	Token         string    `json:"token"`
	TotalSteps    int       `json:"totalSteps"`
	FirstQuestion *Question `json:"firstQuestion,omitempty"`
}

// AnswerRequest is the body of a single answer submission
type AnswerRequest struct {
	Value int `json:"value"`
}

// ProgressResponse describes where a respondent is in the survey
type ProgressResponse struct {
	Done        bool      `json:"done"`
	Answered    int       `json:"answered"`
	TotalSteps  int       `json:"totalSteps"`
	Question    *Question `json:"question"`
	IsCompleted bool      `json:"isCompleted"`
}

// CompleteSessionResponse carries the profile and the latent reveals
type CompleteSessionResponse struct {
	SubmissionID string         `json:"submissionId"`
	Profile      *Profile       `json:"profile"`
	Reveals      []LatentReveal `json:"reveals"`
}
