package service

import (
	"listenerlab/internal/catalog"
	"listenerlab/internal/model"
)

// SurveyService serves the static survey content: questions, personas, reveals
type SurveyService struct {
	cat *catalog.Catalog
}

// NewSurveyService creates a new survey service
func NewSurveyService(cat *catalog.Catalog) *SurveyService {
	return &SurveyService{cat: cat}
}

// Questions returns the questions in presentation order with latent notes hidden
func (s *SurveyService) Questions() []model.Question {
	questions := s.cat.Questions()
	for i := range questions {
		questions[i].LatentNote = ""
	}
	return questions
}

// Question returns one question with its latent note hidden
func (s *SurveyService) Question(id int) (*model.Question, bool) {
	q, ok := s.cat.Question(id)
	if !ok {
		return nil, false
	}
	q.LatentNote = ""
	return &q, true
}

// TotalSteps is the number of questions a respondent must answer
func (s *SurveyService) TotalSteps() int {
	return s.cat.Len()
}

// Personas returns the segment typology; the persona whose id or segment id
// matches active is flagged
func (s *SurveyService) Personas(active string) []model.SegmentView {
	personas := s.cat.Personas()
	views := make([]model.SegmentView, 0, len(personas))
	for _, p := range personas {
		views = append(views, model.SegmentView{
			Persona: p,
			Active:  active != "" && (string(p.ID) == active || p.SegmentID == active),
		})
	}
	return views
}

// Reveals returns what each question was actually measuring
func (s *SurveyService) Reveals() []model.LatentReveal {
	questions := s.cat.Questions()
	reveals := make([]model.LatentReveal, 0, len(questions))
	for _, q := range questions {
		reveals = append(reveals, model.LatentReveal{
			QuestionID: q.ID,
			Construct:  q.Construct,
			Note:       q.LatentNote,
		})
	}
	return reveals
}
