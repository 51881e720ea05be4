package academics

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

var (
	// errors
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrGradeNotFound      = errors.New("grade record not found")
	ErrAlreadySubmitted   = errors.New("assignment already submitted")
)

type (
	Repository interface {
		CreateAssignment(a Assignment) (Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		QueryAllAssignments() ([]Assignment, error)
		DeleteAssignmentsByID(ids ...string) error

		CreateSubmission(s Submission) (Submission, error)
		GetSubmissionByID(id string) (Submission, error)
		QuerySubmissionsByAssignment(assignmentID string) ([]Submission, error)
		QuerySubmissionsByStudent(studentID string) ([]Submission, error)
		UpdateSubmission(s Submission) (Submission, error)

		CreateGrade(g GradeRecord) (GradeRecord, error)
		QueryAllGrades() ([]GradeRecord, error)
		QueryGradesByStudent(studentID string) ([]GradeRecord, error)
		DeleteGradesByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Assignments

func (svc *Service) Assignments() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}

func (svc *Service) CreateAssignment(usr user.User, na NewAssignment) (Assignment, error) {
	a := Assignment{
		ID:        uuid.New().String(),
		Title:     na.Title,
		Subject:   na.Subject,
		ClassName: na.ClassName,
		DueDate:   na.DueDate.UTC(),
		CreatedBy: usr.ID,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateAssignment(a)
}

func (svc *Service) DeleteAssignments(ids ...string) error {
	return svc.repo.DeleteAssignmentsByID(ids...)
}

// Submissions

// Submissions lists an assignment's submissions (the grading view) for staff,
// or the user's own submissions for everyone else.
func (svc *Service) Submissions(usr user.User, assignmentID string) ([]Submission, error) {
	if usr.IsStaff() || usr.IsAdmin() {
		if _, err := svc.repo.GetAssignmentByID(assignmentID); err != nil {
			return nil, err
		}
		return svc.repo.QuerySubmissionsByAssignment(assignmentID)
	}
	return svc.repo.QuerySubmissionsByStudent(usr.ID)
}

func (svc *Service) Submit(usr user.User, ns NewSubmission) (Submission, error) {
	if _, err := svc.repo.GetAssignmentByID(ns.AssignmentID); err != nil {
		return Submission{}, err
	}

	existing, err := svc.repo.QuerySubmissionsByStudent(usr.ID)
	if err != nil {
		return Submission{}, err
	}
	for _, s := range existing {
		if s.AssignmentID == ns.AssignmentID {
			return Submission{}, ErrAlreadySubmitted
		}
	}

	s := Submission{
		ID:           uuid.New().String(),
		AssignmentID: ns.AssignmentID,
		StudentID:    usr.ID,
		StudentName:  usr.Name,
		Content:      ns.Content,
		SubmittedAt:  time.Now().UTC(),
	}
	return svc.repo.CreateSubmission(s)
}

// Grade records a grade against a submission and mirrors it into the
// performance dataset.
func (svc *Service) Grade(usr user.User, submissionID string, gs GradeSubmission) (Submission, error) {
	s, err := svc.repo.GetSubmissionByID(submissionID)
	if err != nil {
		return Submission{}, err
	}
	a, err := svc.repo.GetAssignmentByID(s.AssignmentID)
	if err != nil {
		return Submission{}, err
	}

	grade := gs.Grade
	s.Grade = &grade
	s.Feedback = gs.Feedback
	s.GradedBy = usr.ID
	if s, err = svc.repo.UpdateSubmission(s); err != nil {
		return Submission{}, err
	}

	_, err = svc.repo.CreateGrade(GradeRecord{
		ID:          uuid.New().String(),
		StudentID:   s.StudentID,
		StudentName: s.StudentName,
		Subject:     a.Subject,
		Term:        a.Title,
		Score:       grade,
		RecordedAt:  time.Now().UTC(),
	})
	return s, errors.Wrap(err, "recording grade")
}

// Performance

// Grades returns the grade records for the resolved scope. The requested
// scope is clamped to what the role may see before the query runs.
func (svc *Service) Grades(usr user.User, scope portal.Scope) ([]GradeRecord, error) {
	scope = portal.ClampScope(portal.ModulePerformance, usr.Role, scope)
	if scope == portal.ScopeStudents {
		return svc.repo.QueryAllGrades()
	}
	return svc.repo.QueryGradesByStudent(usr.ID)
}

func (svc *Service) Performance(usr user.User, scope portal.Scope) ([]SubjectAverage, error) {
	grades, err := svc.Grades(usr, scope)
	if err != nil {
		return nil, err
	}
	return AverageBySubject(grades), nil
}

func (svc *Service) DeleteGrades(ids ...string) error {
	return svc.repo.DeleteGradesByID(ids...)
}
