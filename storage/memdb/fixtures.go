package memdb

import (
	"time"

	"github.com/elimuhub/elimu/core/academics"
	"github.com/elimuhub/elimu/core/attendance"
	"github.com/elimuhub/elimu/core/community"
	"github.com/elimuhub/elimu/core/messaging"
	"github.com/elimuhub/elimu/core/schedule"
	"github.com/elimuhub/elimu/core/user"
	"github.com/elimuhub/elimu/core/vault"
)

// Seed loads the demo dataset every fresh portal process starts with. The
// fixture IDs are readable on purpose; they show up in logs and demos.
// The "exists@example.com" account backs the canonical registration-conflict
// case.
func Seed(db *DB) error {
	now := time.Now().UTC()
	day := func(offset int) time.Time { return attendance.Midnight(now.AddDate(0, 0, -offset)) }

	users := []user.User{
		{ID: "usr-amina", Name: "Amina Otieno", Email: "amina@school.example", Role: user.RoleStudent, Verified: true, IsActive: true},
		{ID: "usr-baraka", Name: "Baraka Mwangi", Email: "baraka@school.example", Role: user.RoleTeacher, Verified: true, IsActive: true},
		{ID: "usr-chiku", Name: "Chiku Ndegwa", Email: "chiku@school.example", Role: user.RolePrincipal, Verified: true, IsActive: true},
		{ID: "usr-daudi", Name: "Daudi Njoroge", Email: "daudi@school.example", Role: user.RoleBursar, Verified: true, IsActive: true},
		{ID: "usr-taken", Name: "Taken Account", Email: "exists@example.com", Role: user.RoleStudent, Verified: true, IsActive: true},
	}
	for i := range users {
		users[i].CreatedAt = now.Add(time.Duration(i) * time.Second)
		users[i].UpdatedAt = users[i].CreatedAt
		if _, err := NewUserRepository(db).CreateUser(users[i]); err != nil {
			return err
		}
	}

	msgRepo := NewMessagingRepository(db)
	thread := messaging.Thread{
		ID: "thr-form4", Kind: messaging.ThreadClass, Subject: "Form 4 Physics",
		Participants: []string{"usr-amina", "usr-baraka"}, CreatedAt: now,
	}
	if _, err := msgRepo.CreateThread(thread); err != nil {
		return err
	}
	messages := []messaging.Message{
		{ID: "msg-1", ThreadID: "thr-form4", AuthorID: "usr-baraka", AuthorName: "Baraka Mwangi",
			Body: "Remember the lab report is due Friday.", SentAt: now.Add(-2 * time.Hour)},
		{ID: "msg-2", ThreadID: "thr-form4", AuthorID: "usr-amina", AuthorName: "Amina Otieno",
			Body: "Thanks, submitting tonight.", SentAt: now.Add(-1 * time.Hour)},
	}
	for _, m := range messages {
		if _, err := msgRepo.CreateMessage(m); err != nil {
			return err
		}
	}

	vaultRepo := NewVaultRepository(db)
	files := []vault.File{
		{ID: "fil-syllabus", Name: "Physics Syllabus.pdf", Kind: "document", Size: 482133,
			OwnerID: "usr-baraka", OwnerName: "Baraka Mwangi", Shared: true, UploadedAt: now.AddDate(0, 0, -30)},
		{ID: "fil-notes", Name: "Revision Notes.docx", Kind: "document", Size: 73420,
			OwnerID: "usr-amina", OwnerName: "Amina Otieno", UploadedAt: now.AddDate(0, 0, -3)},
	}
	for _, f := range files {
		if _, err := vaultRepo.CreateFile(f); err != nil {
			return err
		}
	}

	schedRepo := NewScheduleRepository(db)
	periods := []schedule.Period{
		{ID: "per-phy", Day: time.Monday, Start: "08:00", End: "09:20", Subject: "Physics", Room: "Lab 2",
			ClassName: "Form 4A", TeacherID: "usr-baraka", TeacherName: "Baraka Mwangi", CreatedAt: now, UpdatedAt: now},
		{ID: "per-mat", Day: time.Monday, Start: "09:30", End: "10:50", Subject: "Mathematics", Room: "Room 11",
			ClassName: "Form 4A", TeacherID: "usr-baraka", TeacherName: "Baraka Mwangi", CreatedAt: now, UpdatedAt: now},
		{ID: "per-chem", Day: time.Wednesday, Start: "11:00", End: "12:20", Subject: "Chemistry", Room: "Lab 1",
			ClassName: "Form 4A", TeacherID: "usr-baraka", TeacherName: "Baraka Mwangi", CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range periods {
		if _, err := schedRepo.CreatePeriod(p); err != nil {
			return err
		}
	}

	attRepo := NewAttendanceRepository(db)
	records := []attendance.Record{
		{ID: "att-1", StudentID: "usr-amina", StudentName: "Amina Otieno", ClassName: "Form 4A",
			Date: day(2), Status: attendance.StatusPresent, RecordedBy: "usr-baraka", UpdatedAt: now},
		{ID: "att-2", StudentID: "usr-amina", StudentName: "Amina Otieno", ClassName: "Form 4A",
			Date: day(1), Status: attendance.StatusLate, RecordedBy: "usr-baraka", UpdatedAt: now},
		{ID: "att-3", StudentID: "usr-amina", StudentName: "Amina Otieno", ClassName: "Form 4A",
			Date: day(0), Status: attendance.StatusPresent, RecordedBy: "usr-baraka", UpdatedAt: now},
	}
	for _, r := range records {
		if _, err := attRepo.CreateRecord(r); err != nil {
			return err
		}
	}

	acadRepo := NewAcademicsRepository(db)
	if _, err := acadRepo.CreateAssignment(academics.Assignment{
		ID: "asg-lab", Title: "Optics Lab Report", Subject: "Physics", ClassName: "Form 4A",
		DueDate: now.AddDate(0, 0, 4), CreatedBy: "usr-baraka", CreatedAt: now,
	}); err != nil {
		return err
	}
	if _, err := acadRepo.CreateSubmission(academics.Submission{
		ID: "sub-amina", AssignmentID: "asg-lab", StudentID: "usr-amina", StudentName: "Amina Otieno",
		Content: "Refraction measurements attached.", SubmittedAt: now.Add(-30 * time.Minute),
	}); err != nil {
		return err
	}
	grades := []academics.GradeRecord{
		{ID: "grd-1", StudentID: "usr-amina", StudentName: "Amina Otieno", Subject: "Physics",
			Term: "Term 1", Score: 78, RecordedAt: now.AddDate(0, -2, 0)},
		{ID: "grd-2", StudentID: "usr-amina", StudentName: "Amina Otieno", Subject: "Mathematics",
			Term: "Term 1", Score: 84, RecordedAt: now.AddDate(0, -2, 0)},
	}
	for _, g := range grades {
		if _, err := acadRepo.CreateGrade(g); err != nil {
			return err
		}
	}

	commRepo := NewCommunityRepository(db)
	posts := []community.Post{
		{ID: "pst-sports", AuthorID: "usr-chiku", AuthorName: "Chiku Ndegwa",
			Body: "Sports day moved to next Saturday.", Likes: 12, PostedAt: now.AddDate(0, 0, -1)},
		{ID: "pst-fair", AuthorID: "usr-baraka", AuthorName: "Baraka Mwangi",
			Body: "Science fair sign-ups close Wednesday.", Likes: 5, PostedAt: now.Add(-4 * time.Hour)},
	}
	for _, p := range posts {
		if _, err := commRepo.CreatePost(p); err != nil {
			return err
		}
	}
	if _, err := commRepo.CreateConnection(community.Connection{
		ID: "con-1", UserID: "usr-amina", PeerID: "usr-baraka", PeerName: "Baraka Mwangi",
		PeerRole: user.RoleTeacher, Since: now.AddDate(0, -6, 0),
	}); err != nil {
		return err
	}
	return nil
}
