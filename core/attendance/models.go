package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

type Record struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	ClassName   string    `json:"class_name"`
	Date        time.Time `json:"date"` // UTC, midnight
	Status      Status    `json:"status"`
	RecordedBy  string    `json:"recorded_by"`
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type MarkAttendance struct {
	StudentID   string    `json:"student_id" validate:"required"`
	StudentName string    `json:"student_name" validate:"required"`
	ClassName   string    `json:"class_name" validate:"required"`
	Date        time.Time `json:"date"`
	Status      Status    `json:"status" validate:"required,oneof=present absent late"`
}

func (ma *MarkAttendance) Validate(validate *validator.Validate) error {
	if ma.Date.IsZero() {
		ma.Date = Midnight(time.Now().UTC())
	} else {
		ma.Date = Midnight(ma.Date.UTC())
	}
	return validate.Struct(ma)
}

type SetStatus struct {
	Status Status `json:"status" validate:"required,oneof=present absent late"`
}

func (ss SetStatus) Validate(validate *validator.Validate) error { return validate.Struct(ss) }

// Summary aggregates a set of records into the stat-card counts.
type Summary struct {
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Rate    float64 `json:"rate"` // present+late over total
}

func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusAbsent:
			s.Absent++
		case StatusLate:
			s.Late++
		}
	}
	if total := len(records); total > 0 {
		s.Rate = float64(s.Present+s.Late) / float64(total)
	}
	return s
}

func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
