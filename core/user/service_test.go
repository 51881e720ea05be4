package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimuhub/elimu/core"
	"github.com/elimuhub/elimu/core/user"
	emailsvc "github.com/elimuhub/elimu/services/email"
	"github.com/elimuhub/elimu/storage/memdb"
)

func newTestService(t *testing.T) *user.Service {
	t.Helper()
	conf := &core.Config{
		AppName:                       "Elimu",
		TestMode:                      true,
		SecretKey:                     "secret",
		FrontendBaseURL:               "http://localhost:3000",
		EmailVerificationTimeoutDelta: 3 * 24 * time.Hour,
	}
	db := memdb.Open()
	require.NoError(t, memdb.Seed(db))
	return user.NewService(memdb.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf), conf)
}

func TestService_CheckUniqueness(t *testing.T) {
	svc := newTestService(t)

	assert.NoError(t, svc.CheckUniqueness("fresh@school.example"))

	err := svc.CheckUniqueness("exists@example.com")
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func TestService_Register(t *testing.T) {
	svc := newTestService(t)

	usr, err := svc.Register(user.RegisterUser{
		Name:            "Neema Juma",
		Email:           "neema@school.example",
		Role:            user.RoleStudent,
		Password:        "S3cur3!pass",
		PasswordConfirm: "S3cur3!pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.False(t, usr.Verified, "self-service accounts start unverified")

	// a verification mail went out for the new account
	var sent *core.EmailMessage
	for i := range emailsvc.SentMessages {
		msg := emailsvc.SentMessages[i]
		for _, to := range msg.To {
			if to.Address == usr.Email {
				sent = &msg
			}
		}
	}
	require.NotNil(t, sent)
	assert.Equal(t, "Verify your email address", sent.Subject)
	assert.Contains(t, sent.BodyStr, "/verify-email?uid=")
}

func TestService_ConfirmEmail(t *testing.T) {
	svc := newTestService(t)

	usr, err := svc.Register(user.RegisterUser{
		Name:            "Zawadi Mwangi",
		Email:           "zawadi@school.example",
		Role:            user.RoleStudent,
		Password:        "S3cur3!pass",
		PasswordConfirm: "S3cur3!pass",
	})
	require.NoError(t, err)

	token, err := svc.MakeVerificationToken(usr)
	require.NoError(t, err)

	usr, err = svc.ConfirmEmail(user.VerifyEmail{UID: user.EncodeUID(usr), Token: token})
	require.NoError(t, err)
	assert.True(t, usr.Verified)

	// the token hashed over the unverified state; it cannot be replayed
	_, err = svc.ConfirmEmail(user.VerifyEmail{UID: user.EncodeUID(usr), Token: token})
	require.Error(t, err)
	assert.IsType(t, &core.ValidationError{}, err)
}

func TestService_TrustedLogin(t *testing.T) {
	svc := newTestService(t)

	// first login creates the account
	usr, err := svc.TrustedLogin("Imani Njoro", "Imani@School.Example", user.RoleTeacher, "")
	require.NoError(t, err)
	assert.Equal(t, "imani@school.example", usr.Email)
	assert.Equal(t, user.RoleTeacher, usr.Role)
	assert.True(t, usr.Verified)
	assert.False(t, usr.LastLogin.IsZero())

	// a later login with a different hat updates the same account
	again, err := svc.TrustedLogin("Imani Njoro", "imani@school.example", user.RolePrincipal, "")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, again.ID)
	assert.Equal(t, user.RolePrincipal, again.Role)

	// deactivated accounts cannot log back in
	isActive := false
	_, err = svc.Update(usr.ID, user.UpdateUser{IsActive: &isActive})
	require.NoError(t, err)
	_, err = svc.TrustedLogin("Imani Njoro", "imani@school.example", user.RoleTeacher, "")
	assert.Equal(t, user.ErrDeactivated, err)
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(t)

	usr, err := svc.GetByEmail("exists@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(usr.ID))
	_, err = svc.GetByID(usr.ID)
	assert.Equal(t, user.ErrNotFound, err)

	// the others are untouched
	all, err := svc.QueryAll()
	require.NoError(t, err)
	assert.NotEmpty(t, all)
}
