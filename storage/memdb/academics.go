package memdb

import (
	"sort"

	"github.com/elimuhub/elimu/core/academics"
)

type academicsRepository struct {
	db *academicsTable
}

var _ academics.Repository = (*academicsRepository)(nil)

func NewAcademicsRepository(db *DB) academics.Repository {
	return &academicsRepository{db: db.academics}
}

// Assignments

func (repo *academicsRepository) CreateAssignment(a academics.Assignment) (academics.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.assignments[a.ID] = &a
	return a, nil
}

func (repo *academicsRepository) GetAssignmentByID(id string) (academics.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.assignments[id]; ok {
		return *a, nil
	}
	return academics.Assignment{}, academics.ErrAssignmentNotFound
}

func (repo *academicsRepository) QueryAllAssignments() ([]academics.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	assignments := make([]academics.Assignment, 0, len(repo.db.assignments))
	for _, a := range repo.db.assignments {
		assignments = append(assignments, *a)
	}
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].DueDate.Equal(assignments[j].DueDate) {
			return assignments[i].ID < assignments[j].ID
		}
		return assignments[i].DueDate.Before(assignments[j].DueDate)
	})
	return assignments, nil
}

func (repo *academicsRepository) DeleteAssignmentsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.assignments[id]; !ok {
			return academics.ErrAssignmentNotFound
		}
		delete(repo.db.assignments, id)
	}
	return nil
}

// Submissions

func (repo *academicsRepository) CreateSubmission(s academics.Submission) (academics.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.submissions[s.ID] = &s
	return s, nil
}

func (repo *academicsRepository) GetSubmissionByID(id string) (academics.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.submissions[id]; ok {
		return *s, nil
	}
	return academics.Submission{}, academics.ErrSubmissionNotFound
}

func (repo *academicsRepository) querySubmissions(match func(academics.Submission) bool) []academics.Submission {
	submissions := make([]academics.Submission, 0)
	for _, s := range repo.db.submissions {
		if match(*s) {
			submissions = append(submissions, *s)
		}
	}
	sort.Slice(submissions, func(i, j int) bool {
		if submissions[i].SubmittedAt.Equal(submissions[j].SubmittedAt) {
			return submissions[i].ID < submissions[j].ID
		}
		return submissions[i].SubmittedAt.Before(submissions[j].SubmittedAt)
	})
	return submissions
}

func (repo *academicsRepository) QuerySubmissionsByAssignment(assignmentID string) ([]academics.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.querySubmissions(func(s academics.Submission) bool { return s.AssignmentID == assignmentID }), nil
}

func (repo *academicsRepository) QuerySubmissionsByStudent(studentID string) ([]academics.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.querySubmissions(func(s academics.Submission) bool { return s.StudentID == studentID }), nil
}

func (repo *academicsRepository) UpdateSubmission(s academics.Submission) (academics.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.submissions[s.ID]; !ok {
		return academics.Submission{}, academics.ErrSubmissionNotFound
	}
	repo.db.submissions[s.ID] = &s
	return s, nil
}

// Grades

func (repo *academicsRepository) CreateGrade(g academics.GradeRecord) (academics.GradeRecord, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.grades[g.ID] = &g
	return g, nil
}

func (repo *academicsRepository) queryGrades(match func(academics.GradeRecord) bool) []academics.GradeRecord {
	grades := make([]academics.GradeRecord, 0)
	for _, g := range repo.db.grades {
		if match(*g) {
			grades = append(grades, *g)
		}
	}
	sort.Slice(grades, func(i, j int) bool {
		if grades[i].RecordedAt.Equal(grades[j].RecordedAt) {
			return grades[i].ID < grades[j].ID
		}
		return grades[i].RecordedAt.Before(grades[j].RecordedAt)
	})
	return grades
}

func (repo *academicsRepository) QueryAllGrades() ([]academics.GradeRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryGrades(func(academics.GradeRecord) bool { return true }), nil
}

func (repo *academicsRepository) QueryGradesByStudent(studentID string) ([]academics.GradeRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryGrades(func(g academics.GradeRecord) bool { return g.StudentID == studentID }), nil
}

func (repo *academicsRepository) DeleteGradesByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.grades[id]; !ok {
			return academics.ErrGradeNotFound
		}
		delete(repo.db.grades, id)
	}
	return nil
}
