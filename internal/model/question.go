package model

const (
	DefaultScaleMin = 1
	DefaultScaleMax = 7
)

// Question is a static survey item
type Question struct {
	ID         int       `json:"id"`
	Construct  Construct `json:"construct"`
	Text       string    `json:"text"`
	ScaleLeft  string    `json:"scaleLeft"`
	ScaleRight string    `json:"scaleRight"`
	LatentNote string    `json:"latentNote,omitempty"`
	ScaleRange *[2]int   `json:"scaleRange,omitempty"` // nil means 1-7
}

// Range returns the inclusive answer range for the question
func (q Question) Range() (int, int) {
	if q.ScaleRange != nil {
		return q.ScaleRange[0], q.ScaleRange[1]
	}
	return DefaultScaleMin, DefaultScaleMax
}

// InRange reports whether value is an acceptable answer
func (q Question) InRange(value int) bool {
	min, max := q.Range()
	return value >= min && value <= max
}

// Response is one answer chosen by a respondent
type Response struct {
	QuestionID int `json:"questionId" bson:"questionId"`
	Value      int `json:"value" bson:"value"`
}

// LatentReveal is shown after completion: what a question actually measured
type LatentReveal struct {
	QuestionID int       `json:"questionId"`
	Construct  Construct `json:"construct"`
	Note       string    `json:"note"`
}
