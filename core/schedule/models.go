package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/elimuhub/elimu/core"
)

// Period is one scheduled class slot. Start and End are wall-clock times in
// "15:04" form; Day is the weekday the slot repeats on.
type Period struct {
	ID          string       `json:"id"`
	Day         time.Weekday `json:"day"`
	Start       string       `json:"start"`
	End         string       `json:"end"`
	Subject     string       `json:"subject"`
	Room        string       `json:"room"`
	ClassName   string       `json:"class_name"`
	TeacherID   string       `json:"teacher_id"`
	TeacherName string       `json:"teacher_name"`
	CreatedAt   time.Time    `json:"created_at"` // UTC
	UpdatedAt   time.Time    `json:"updated_at"` // UTC
}

// Covers reports whether the period is in progress at t (local wall clock).
func (p *Period) Covers(t time.Time) bool {
	if t.Weekday() != p.Day {
		return false
	}
	hhmm := t.Format("15:04")
	return p.Start <= hhmm && hhmm < p.End
}

type NewPeriod struct {
	Day       time.Weekday `json:"day" validate:"min=0,max=6"`
	Start     string       `json:"start" validate:"required,len=5"`
	End       string       `json:"end" validate:"required,len=5,gtfield=Start"`
	Subject   string       `json:"subject" validate:"required"`
	Room      string       `json:"room" validate:"required"`
	ClassName string       `json:"class_name" validate:"required"`
}

func (np *NewPeriod) Validate(validate *validator.Validate) error {
	np.Subject = core.CleanString(np.Subject)
	np.Room = core.CleanString(np.Room)
	np.ClassName = core.CleanString(np.ClassName)
	return validate.Struct(np)
}

type UpdatePeriod struct {
	Day     *time.Weekday `json:"day" validate:"omitempty,min=0,max=6"`
	Start   string        `json:"start" validate:"omitempty,len=5"`
	End     string        `json:"end" validate:"omitempty,len=5"`
	Subject string        `json:"subject"`
	Room    string        `json:"room"`
}

func (up *UpdatePeriod) Validate(validate *validator.Validate) error {
	up.Subject = core.CleanString(up.Subject)
	up.Room = core.CleanString(up.Room)
	return validate.Struct(up)
}
