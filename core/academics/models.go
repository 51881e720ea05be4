package academics

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/elimuhub/elimu/core"
)

type Assignment struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	ClassName string    `json:"class_name"`
	DueDate   time.Time `json:"due_date"` // UTC
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	Content      string    `json:"content"`
	SubmittedAt  time.Time `json:"submitted_at"` // UTC
	Grade        *int      `json:"grade,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
	GradedBy     string    `json:"graded_by,omitempty"`
}

func (s *Submission) Graded() bool { return s.Grade != nil }

// GradeRecord is one term score, the unit of the performance module.
type GradeRecord struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	Subject     string    `json:"subject"`
	Term        string    `json:"term"`
	Score       int       `json:"score"`
	RecordedAt  time.Time `json:"recorded_at"` // UTC
}

type NewAssignment struct {
	Title     string    `json:"title" validate:"required"`
	Subject   string    `json:"subject" validate:"required"`
	ClassName string    `json:"class_name" validate:"required"`
	DueDate   time.Time `json:"due_date" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Subject = core.CleanString(na.Subject)
	na.ClassName = core.CleanString(na.ClassName)
	return validate.Struct(na)
}

type NewSubmission struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.Content = core.CleanString(ns.Content)
	return validate.Struct(ns)
}

type GradeSubmission struct {
	Grade    int    `json:"grade" validate:"min=0,max=100"`
	Feedback string `json:"feedback"`
}

func (gs *GradeSubmission) Validate(validate *validator.Validate) error {
	gs.Feedback = core.CleanString(gs.Feedback)
	return validate.Struct(gs)
}

// SubjectAverage is one row of the performance analysis view.
type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

func AverageBySubject(grades []GradeRecord) []SubjectAverage {
	order := make([]string, 0)
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, g := range grades {
		if _, ok := sums[g.Subject]; !ok {
			order = append(order, g.Subject)
		}
		sums[g.Subject] += g.Score
		counts[g.Subject]++
	}

	avgs := make([]SubjectAverage, 0, len(order))
	for _, subj := range order {
		avgs = append(avgs, SubjectAverage{
			Subject: subj,
			Average: float64(sums[subj]) / float64(counts[subj]),
			Count:   counts[subj],
		})
	}
	return avgs
}
