package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimuhub/elimu/core"
	emailsvc "github.com/elimuhub/elimu/services/email"
)

func TestService_sendVerificationMail(t *testing.T) {
	conf := &core.Config{
		AppName:                       "Elimu",
		TestMode:                      true,
		SecretKey:                     "secret",
		FrontendBaseURL:               "http://localhost:3000",
		EmailVerificationTimeoutDelta: 3 * 24 * time.Hour,
	}
	svc := &Service{conf: conf, mail: emailsvc.NewConsoleServiceMock(conf)}

	usr := tokenUser(t)
	usr.Email = "mailed@school.example"
	require.NoError(t, svc.sendVerificationMail(usr))

	var mailed *core.EmailMessage
	for i, m := range emailsvc.SentMessages {
		for _, to := range m.To {
			if to.Address == usr.Email {
				mailed = &emailsvc.SentMessages[i]
			}
		}
	}
	require.NotNil(t, mailed, "verification email not sent")
	assert.Equal(t, "Verify your email address", mailed.Subject)
	assert.Contains(t, mailed.BodyStr, conf.FrontendBaseURL+"/verify-email?uid="+EncodeUID(usr))
}
