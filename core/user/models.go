package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/elimuhub/elimu/core"
)

// Role identifies an actor's institutional function. The set is closed;
// anything outside it resolves through the External capability fallback.
type Role string

const (
	RoleStudent          Role = "student"
	RoleTeacher          Role = "teacher"
	RoleHeadOfDepartment Role = "head_of_department"
	RolePrincipal        Role = "principal"
	RoleBursar           Role = "bursar"
	RoleAdmissions       Role = "admissions"
	RoleAdmin            Role = "admin"
	RoleSuperUser        Role = "superuser"
	RoleVendor           Role = "vendor"
	RolePatron           Role = "patron"
)

// Capability is the coarse grouping of roles sharing the same view-resolution
// behavior. Adding a role means adding one entry to roleCapabilities, nothing else.
type Capability string

const (
	CapabilityIndividual    Capability = "individual"
	CapabilityInstructional Capability = "instructional"
	CapabilityLeadership    Capability = "leadership"
	CapabilityExternal      Capability = "external"
)

var (
	AllRoles = []Role{
		RoleStudent, RoleTeacher, RoleHeadOfDepartment, RolePrincipal, RoleBursar,
		RoleAdmissions, RoleAdmin, RoleSuperUser, RoleVendor, RolePatron,
	}

	roleCapabilities = map[Role]Capability{
		RoleStudent: CapabilityIndividual,

		RoleTeacher:          CapabilityInstructional,
		RolePatron:           CapabilityInstructional,
		RoleHeadOfDepartment: CapabilityInstructional,

		RolePrincipal:  CapabilityLeadership,
		RoleAdmin:      CapabilityLeadership,
		RoleSuperUser:  CapabilityLeadership,
		RoleBursar:     CapabilityLeadership,
		RoleAdmissions: CapabilityLeadership,

		RoleVendor: CapabilityExternal,
	}

	rolePriorities = map[Role]int{
		// Leadership: 30 - 21
		RoleSuperUser:  30,
		RoleAdmin:      29,
		RolePrincipal:  28,
		RoleBursar:     23,
		RoleAdmissions: 22,

		// Instructional: 20 - 11
		RoleHeadOfDepartment: 15,
		RoleTeacher:          12,
		RolePatron:           11,

		// Individual & external: 10 - 1
		RoleVendor:  5,
		RoleStudent: 1,
	}

	Roles = []RoleInfo{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Head of Department", Value: RoleHeadOfDepartment},
		{Name: "Principal", Value: RolePrincipal},
		{Name: "Bursar", Value: RoleBursar},
		{Name: "Admissions", Value: RoleAdmissions},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Super User", Value: RoleSuperUser},
		{Name: "Vendor", Value: RoleVendor},
		{Name: "Patron", Value: RolePatron},
	}
)

type RoleInfo struct {
	Name  string `json:"name"`
	Value Role   `json:"value"`
}

// Capability resolves the role's capability class. Unknown roles fall back to
// External; the result is never undefined.
func (r Role) Capability() Capability {
	if c, ok := roleCapabilities[r]; ok {
		return c
	}
	return CapabilityExternal
}

func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

func RolePriority(role Role) int {
	return rolePriorities[role]
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar"`
	Verified     bool      `json:"verified"`
	IsActive     bool      `json:"is_active"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) Capability() Capability { return u.Role.Capability() }

func (u *User) IsStudent() bool { return u.Capability() == CapabilityIndividual }
func (u *User) IsStaff() bool   { return u.Capability() == CapabilityInstructional }
func (u *User) IsAdmin() bool   { return u.Capability() == CapabilityLeadership }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string `json:"name" validate:"required,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	Role            Role   `json:"role" validate:"required,role"`
	Avatar          string `json:"avatar" validate:"omitempty,uri"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Email)
}

// RegisterUser is the self-service sign-up payload. The account starts
// unverified; the role defaults to Student when omitted.
type RegisterUser struct {
	Name            string `json:"name" validate:"required,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	Role            Role   `json:"role" validate:"omitempty,role"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (ru *RegisterUser) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ru.Name = core.CleanString(ru.Name)
	ru.Email = core.CleanString(ru.Email, true /* lower */)
	if ru.Role == "" {
		ru.Role = RoleStudent
	}

	if err := validate.Struct(ru); err != nil {
		return err
	}
	return svc.CheckUniqueness(ru.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Role            Role   `json:"role" validate:"omitempty,role"`
	Avatar          string `json:"avatar" validate:"omitempty,uri"`
	IsActive        *bool  `json:"is_active"`
	Verified        *bool  `json:"verified"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate, svc ServiceInterface) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	email := core.CleanString(uu.Email, true /* lower */)
	if email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if uu.Role == "" {
		uu.Role = origUsr.Role
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Email, origUsr)
}

// VerifyEmail carries the signed verification token back from the email link.
type VerifyEmail struct {
	UID   string `json:"uid,omitempty" validate:"required"`
	Token string `json:"token,omitempty" validate:"required"`
}

func (ve VerifyEmail) Validate(validate *validator.Validate) error { return validate.Struct(ve) }

type QueryFilter struct {
	Search      string    `query:"search"`
	Roles       []Role    `query:"role"`
	IsActive    *bool     `query:"is_active"`
	Verified    *bool     `query:"verified"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.IsActive == nil && qf.Verified == nil &&
		qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
