package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	echoapi "github.com/elimuhub/elimu/apps/api/echo"
	"github.com/elimuhub/elimu/core/academics"
	"github.com/elimuhub/elimu/core/attendance"
	"github.com/elimuhub/elimu/core/messaging"
	"github.com/elimuhub/elimu/core/schedule"
	"github.com/elimuhub/elimu/core/user"
	"github.com/elimuhub/elimu/storage/memdb"
)

// the tab entitlement middleware gates every module group; a role whose
// navigation lacks the tab never reaches the handler
func Test_moduleApi_entitlement(t *testing.T) {
	vendor, err := usrSvc.TrustedLogin("Crafty Vendor", "crafty@vendor.example", user.RoleVendor, "")
	if err != nil {
		t.Fatalf("TrustedLogin(): %v", err)
	}
	token := getToken(t, vendor)

	tests := []httpTest{
		{name: "No attendance for externals", method: http.MethodGet, path: "/v1/attendance/records", token: token, wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied)},
		{name: "No performance for externals", method: http.MethodGet, path: "/v1/performance/grades", token: token, wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied)},
		{name: "Messenger stays open", method: http.MethodGet, path: "/v1/messenger/unread", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.UnreadResponse{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { checkCodeAndData(t, tt, do(tt)) })
	}
}

// the scope toggle on data endpoints clamps to the role: a student asking for
// the "students" scope still only gets their own rows
func Test_attendanceApi_scopeClamped(t *testing.T) {
	student := getUser(t, "amina@school.example")
	teacher := getUser(t, "baraka@school.example")

	// put another student's row on the register first
	rec := do(httpTest{
		method: http.MethodPost, path: "/v1/attendance/records",
		body:  []byte(`{"student_id":"usr-taken","student_name":"Taken Account","class_name":"Form 4B","status":"absent"}`),
		token: getToken(t, teacher),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	for _, scope := range []string{"students", "bogus"} {
		rec = do(httpTest{method: http.MethodGet, path: "/v1/attendance/records?scope=" + scope, token: getToken(t, student)})
		if rec.Code != http.StatusOK {
			t.Fatalf("scope=%s code = %v; body %s", scope, rec.Code, rec.Body.String())
		}
		var records []attendance.Record
		if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
			t.Fatalf("unmarshalling records: %v", err)
		}
		if len(records) == 0 {
			t.Fatalf("scope=%s returned no records", scope)
		}
		for _, r := range records {
			if r.StudentID != student.ID {
				t.Errorf("scope=%s leaked record %s for %s", scope, r.ID, r.StudentID)
			}
		}
	}

	// staff still get the full register
	rec = do(httpTest{method: http.MethodGet, path: "/v1/attendance/records?scope=students", token: getToken(t, teacher)})
	var records []attendance.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("unmarshalling records: %v", err)
	}
	var foundOther bool
	for _, r := range records {
		if r.StudentID == "usr-taken" {
			foundOther = true
		}
	}
	if !foundOther {
		t.Errorf("records = %+v; want usr-taken included for staff", records)
	}
}

func Test_performanceApi_scopeClamped(t *testing.T) {
	student := getUser(t, "amina@school.example")

	if _, err := memdb.NewAcademicsRepository(db).CreateGrade(academics.GradeRecord{
		ID: "grd-hist", StudentID: "usr-taken", StudentName: "Taken Account",
		Subject: "History", Term: "Term 1", Score: 59, RecordedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("CreateGrade(): %v", err)
	}

	rec := do(httpTest{method: http.MethodGet, path: "/v1/performance/grades?scope=students", token: getToken(t, student)})
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var grades []academics.GradeRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &grades); err != nil {
		t.Fatalf("unmarshalling grades: %v", err)
	}
	if len(grades) == 0 {
		t.Fatal("no grades returned")
	}
	for _, g := range grades {
		if g.StudentID != student.ID {
			t.Errorf("leaked grade %s for %s", g.ID, g.StudentID)
		}
	}
}

func Test_messagingApi(t *testing.T) {
	student := getUser(t, "amina@school.example")
	teacher := getUser(t, "baraka@school.example")
	principal := getUser(t, "chiku@school.example")

	t.Run("Participants see their threads", func(t *testing.T) {
		rec := do(httpTest{method: http.MethodGet, path: "/v1/messenger/threads", token: getToken(t, student)})
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var threads []messaging.Thread
		if err := json.Unmarshal(rec.Body.Bytes(), &threads); err != nil {
			t.Fatalf("unmarshalling threads: %v", err)
		}
		var found bool
		for _, th := range threads {
			if th.ID == "thr-form4" {
				found = true
			}
		}
		if !found {
			t.Errorf("threads = %+v; want thr-form4 included", threads)
		}
	})

	t.Run("Non-participants are kept out", func(t *testing.T) {
		outsider := getUser(t, "daudi@school.example") // bursar, leadership
		// leadership reads everything; a plain outsider does not
		rec := do(httpTest{method: http.MethodGet, path: "/v1/messenger/threads/thr-form4/messages", token: getToken(t, outsider)})
		if rec.Code != http.StatusOK {
			t.Errorf("leadership code = %v; body %s", rec.Code, rec.Body.String())
		}

		loner, err := usrSvc.TrustedLogin("Lone Patron", "lone@school.example", user.RolePatron, "")
		if err != nil {
			t.Fatalf("TrustedLogin(): %v", err)
		}
		tt := httpTest{
			method: http.MethodGet, path: "/v1/messenger/threads/thr-form4/messages",
			token: getToken(t, loner), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		}
		checkCodeAndData(t, tt, do(tt))
	})

	t.Run("Broadcast threads are leadership-only", func(t *testing.T) {
		body := []byte(`{"kind":"broadcast","subject":"Exam week","participants":["usr-amina"]}`)

		tt := httpTest{
			method: http.MethodPost, path: "/v1/messenger/threads", body: body,
			token: getToken(t, teacher), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		}
		checkCodeAndData(t, tt, do(tt))

		rec := do(httpTest{method: http.MethodPost, path: "/v1/messenger/threads", body: body, token: getToken(t, principal)})
		if rec.Code != http.StatusCreated {
			t.Errorf("code = %v; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("Send and read back", func(t *testing.T) {
		rec := do(httpTest{
			method: http.MethodPost, path: "/v1/messenger/messages",
			body:  []byte(`{"thread_id":"thr-form4","body":"See you in the lab."}`),
			token: getToken(t, teacher),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}

		rec = do(httpTest{method: http.MethodGet, path: "/v1/messenger/threads/thr-form4/messages", token: getToken(t, student)})
		var msgs []messaging.Message
		if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
			t.Fatalf("unmarshalling messages: %v", err)
		}
		if len(msgs) < 3 {
			t.Errorf("len(msgs) = %d; want at least 3", len(msgs))
		}
	})

	t.Run("Unknown thread", func(t *testing.T) {
		tt := httpTest{
			method: http.MethodGet, path: "/v1/messenger/threads/thr-nope/messages",
			token: getToken(t, student), wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		}
		checkCodeAndData(t, tt, do(tt))
	})
}

func Test_scheduleApi(t *testing.T) {
	student := getUser(t, "amina@school.example")
	teacher := getUser(t, "baraka@school.example")

	t.Run("Students cannot edit the timetable", func(t *testing.T) {
		tt := httpTest{
			method: http.MethodPost, path: "/v1/schedule/periods",
			body:     []byte(`{"day":5,"start":"14:00","end":"15:20","subject":"Biology","room":"Lab 3","class_name":"Form 4A"}`),
			token:    getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		}
		checkCodeAndData(t, tt, do(tt))
	})

	t.Run("Staff CRUD", func(t *testing.T) {
		token := getToken(t, teacher)

		rec := do(httpTest{
			method: http.MethodPost, path: "/v1/schedule/periods",
			body:  []byte(`{"day":5,"start":"14:00","end":"15:20","subject":"Biology","room":"Lab 3","class_name":"Form 4A"}`),
			token: token,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var p schedule.Period
		if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
			t.Fatalf("unmarshalling Period: %v", err)
		}
		if p.TeacherID != teacher.ID {
			t.Errorf("teacher_id = %v; want %v", p.TeacherID, teacher.ID)
		}

		rec = do(httpTest{
			method: http.MethodPut, path: "/v1/schedule/periods/" + p.ID,
			body:  []byte(`{"room":"Lab 4"}`),
			token: token,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
			t.Fatalf("unmarshalling Period: %v", err)
		}
		if p.Room != "Lab 4" {
			t.Errorf("room = %v; want Lab 4", p.Room)
		}

		tt := httpTest{method: http.MethodDelete, path: "/v1/schedule/periods/" + p.ID, token: token, wantCode: http.StatusNoContent}
		checkCodeAndData(t, tt, do(tt))
	})

	t.Run("Scope narrows staff to their own periods", func(t *testing.T) {
		rec := do(httpTest{method: http.MethodGet, path: "/v1/schedule/periods?scope=me", token: getToken(t, teacher)})
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var periods []schedule.Period
		if err := json.Unmarshal(rec.Body.Bytes(), &periods); err != nil {
			t.Fatalf("unmarshalling periods: %v", err)
		}
		for _, p := range periods {
			if p.TeacherID != teacher.ID {
				t.Errorf("period %s teacher_id = %v; want %v", p.ID, p.TeacherID, teacher.ID)
			}
		}
	})

	t.Run("Current period", func(t *testing.T) {
		// the test clock never started; nothing is in progress
		tt := httpTest{
			method: http.MethodGet, path: "/v1/schedule/current", token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.CurrentPeriodResponse{}),
		}
		checkCodeAndData(t, tt, do(tt))
	})
}
