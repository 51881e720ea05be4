package academics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimuhub/elimu/core/academics"
	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
	"github.com/elimuhub/elimu/storage/memdb"
)

func newTestService(t *testing.T) (*academics.Service, *memdb.DB) {
	db := memdb.Open()
	require.NoError(t, memdb.Seed(db))
	return academics.NewService(memdb.NewAcademicsRepository(db)), db
}

func TestService_Grades_scopeClamping(t *testing.T) {
	svc, db := newTestService(t)

	_, err := memdb.NewAcademicsRepository(db).CreateGrade(academics.GradeRecord{
		ID: "grd-other", StudentID: "usr-taken", StudentName: "Taken Account",
		Subject: "History", Term: "Term 1", Score: 61, RecordedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// a student asking for the whole gradebook only gets their own records
	student := user.User{ID: "usr-amina", Role: user.RoleStudent, IsActive: true}
	grades, err := svc.Grades(student, portal.ScopeStudents)
	require.NoError(t, err)
	require.NotEmpty(t, grades)
	for _, g := range grades {
		assert.Equal(t, "usr-amina", g.StudentID)
	}

	// staff on the students scope see every record
	teacher := user.User{ID: "usr-baraka", Role: user.RoleTeacher, IsActive: true}
	grades, err = svc.Grades(teacher, portal.ScopeStudents)
	require.NoError(t, err)
	studentIDs := make(map[string]bool, len(grades))
	for _, g := range grades {
		studentIDs[g.StudentID] = true
	}
	assert.True(t, studentIDs["usr-amina"])
	assert.True(t, studentIDs["usr-taken"])
}

func TestService_Performance_scopeClamping(t *testing.T) {
	svc, db := newTestService(t)

	_, err := memdb.NewAcademicsRepository(db).CreateGrade(academics.GradeRecord{
		ID: "grd-other", StudentID: "usr-taken", StudentName: "Taken Account",
		Subject: "History", Term: "Term 1", Score: 61, RecordedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	student := user.User{ID: "usr-amina", Role: user.RoleStudent, IsActive: true}
	avgs, err := svc.Performance(student, portal.ScopeStudents)
	require.NoError(t, err)

	subjects := make([]string, 0, len(avgs))
	for _, a := range avgs {
		subjects = append(subjects, a.Subject)
	}
	assert.ElementsMatch(t, []string{"Physics", "Mathematics"}, subjects)
	assert.NotContains(t, subjects, "History")
}
