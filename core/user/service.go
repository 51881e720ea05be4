package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
	ErrDeactivated = errors.New("account deactivated")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedUsers ...User) error
		CreateUser(user User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		// FilterUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.Name or User.Email.
		FilterUsers(filter QueryFilter) ([]User, error)
		UpdateUser(user User, isActive, verified *bool) (User, error)
		DeleteUsersByID(ids ...string) error
	}

	ServiceInterface interface {
		CheckUniqueness(email string, exclUsers ...User) error
		Create(nu NewUser) (User, error)
		Register(ru RegisterUser) (User, error)
		ConfirmEmail(ve VerifyEmail) (User, error)
		TrustedLogin(name, email string, role Role, avatar string) (User, error)
		QueryAll() ([]User, error)
		Filter(filter *QueryFilter) ([]User, error)
		GetByID(id string) (User, error)
		GetByEmail(email string) (User, error)
		Update(id string, uu UpdateUser) (User, error)
		Delete(ids ...string) error
		SetLastLogin(usr User) (User, error)
	}

	Service struct {
		repo Repository
		mail core.EmailService
		conf *core.Config
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mail: mailSvc, conf: conf}
}

func (svc *Service) CheckUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclUsers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		ID:        uuid.New().String(),
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		Avatar:    nu.Avatar,
		Verified:  true,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

// Register creates a self-service account. The account starts unverified and a
// signed verification token is mailed out. The configured mock delay stands in
// for the upstream round-trip the original flow simulated.
func (svc *Service) Register(ru RegisterUser) (User, error) {
	if d := svc.conf.Mock.RegistrationDelay; d > 0 {
		time.Sleep(d)
	}

	now := time.Now().UTC()
	usr := User{
		ID:        uuid.New().String(),
		Name:      ru.Name,
		Email:     ru.Email,
		Role:      ru.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(ru.Password); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, err
	}
	if err = svc.sendVerificationMail(usr); err != nil {
		return User{}, err
	}
	return usr, nil
}

// ConfirmEmail flips the Verified flag once the mailed token checks out.
// The token hashes over the flag itself, so it cannot be replayed after use.
func (svc *Service) ConfirmEmail(ve VerifyEmail) (User, error) {
	id, err := decodeUID(ve.UID)
	if err != nil {
		return User{}, core.NewValidationError(errInvalidToken)
	}
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, core.NewValidationError(errInvalidToken)
	}
	if err = svc.verifyToken(usr, ve.Token); err != nil {
		return User{}, core.NewValidationError(err)
	}
	verified := true
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr, nil, &verified)
}

// TrustedLogin implements the portal's role-selector login: the caller-supplied
// profile is taken at face value and an account is fetched or created for it.
func (svc *Service) TrustedLogin(name, email string, role Role, avatar string) (User, error) {
	email = core.CleanString(email, true /* lower */)
	now := time.Now().UTC()

	usr, err := svc.repo.GetUserByEmail(email)
	if err == ErrNotFound {
		usr = User{
			ID:        uuid.New().String(),
			Name:      core.CleanString(name),
			Email:     email,
			Role:      role,
			Avatar:    avatar,
			Verified:  true,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if usr, err = svc.repo.CreateUser(usr); err != nil {
			return User{}, errors.Wrap(err, "creating login user")
		}
		return svc.SetLastLogin(usr)
	}
	if err != nil {
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if !usr.IsActive {
		return User{}, ErrDeactivated
	}

	// the selector may pick a different hat for an existing account
	usr.Role = role
	if avatar != "" {
		usr.Avatar = avatar
	}
	usr.UpdatedAt = now
	if usr, err = svc.repo.UpdateUser(usr, nil, nil); err != nil {
		return User{}, errors.Wrap(err, "updating login user")
	}
	return svc.SetLastLogin(usr)
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) Filter(filter *QueryFilter) ([]User, error) {
	if filter == nil || filter.IsEmpty() {
		return svc.QueryAll()
	}
	return svc.repo.FilterUsers(*filter)
}

func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	usr := User{
		ID:        id,
		Name:      uu.Name,
		Email:     uu.Email,
		Role:      uu.Role,
		Avatar:    uu.Avatar,
		UpdatedAt: time.Now().UTC(),
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	return svc.repo.UpdateUser(usr, uu.IsActive, uu.Verified)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteUsersByID(ids...)
}

func (svc *Service) SetLastLogin(usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(usr, nil, nil)
}

func (svc *Service) sendVerificationMail(usr User) error {
	token, err := svc.MakeVerificationToken(usr)
	if err != nil {
		return errors.Wrap(err, "making verification token")
	}
	link := fmt.Sprintf(
		"%s/verify-email?uid=%s&token=%s",
		svc.conf.FrontendBaseURL, EncodeUID(usr), token,
	)
	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Verify your email address",
		BodyStr: fmt.Sprintf(
			"Hi %s,\r\n\r\nWelcome to %s! Please confirm your email address "+
				"by following this link:\r\n\r\n%s\r\n",
			usr.Name, svc.conf.AppName, link,
		),
		TemplateName: "email_verification",
		TemplateData: struct {
			Name string
			URL  string
		}{usr.Name, link},
	})
	return nil
}
