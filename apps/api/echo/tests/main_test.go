package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/elimuhub/elimu/apps/api/echo"
	"github.com/elimuhub/elimu/core"
	"github.com/elimuhub/elimu/core/academics"
	"github.com/elimuhub/elimu/core/attendance"
	"github.com/elimuhub/elimu/core/community"
	"github.com/elimuhub/elimu/core/messaging"
	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/schedule"
	"github.com/elimuhub/elimu/core/session"
	"github.com/elimuhub/elimu/core/user"
	"github.com/elimuhub/elimu/core/vault"
	emailsvc "github.com/elimuhub/elimu/services/email"
	logsvc "github.com/elimuhub/elimu/services/logger"
	"github.com/elimuhub/elimu/storage/memdb"
)

var (
	conf    *core.Config
	db      *memdb.DB
	app     *echoapi.Server
	usrSvc  *user.Service
	sessSvc *session.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errPermDenied   = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	conf = &core.Config{
		TestMode:        true,
		Env:             "TEST",
		AppName:         "Elimu",
		SecretKey:       "secret",
		FrontendBaseURL: "http://localhost:3000",

		EmailVerificationTimeoutDelta: 3 * 24 * time.Hour,

		Server: core.ServerConfig{
			JWTExpirationDelta:        1 * time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	// set up storage
	db = memdb.Open()
	if err := memdb.Seed(db); err != nil {
		fmt.Printf("memdb.Seed(): %v", err)
		os.Exit(1)
	}

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc = user.NewService(memdb.NewUserRepository(db), mailSvc, conf)
	sessSvc = session.NewService(memdb.NewSessionRepository(db))
	msgSvc := messaging.NewService(memdb.NewMessagingRepository(db))
	vaultSvc := vault.NewService(memdb.NewVaultRepository(db))
	schedSvc := schedule.NewService(memdb.NewScheduleRepository(db))
	attSvc := attendance.NewService(memdb.NewAttendanceRepository(db))
	acadSvc := academics.NewService(memdb.NewAcademicsRepository(db))
	commSvc := community.NewService(memdb.NewCommunityRepository(db))

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	portal.InitValidators(validate, translator)
	session.InitValidators(validate, translator)

	// set up server; the period clock stays unstarted, /schedule/current
	// simply reports nothing in progress
	app = echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		UserSvc:    usrSvc,
		SessionSvc: sessSvc,
		MsgSvc:     msgSvc,
		VaultSvc:   vaultSvc,
		SchedSvc:   schedSvc,
		SchedClock: schedule.NewClock(schedSvc, time.Minute),
		AttSvc:     attSvc,
		AcadSvc:    acadSvc,
		CommSvc:    commSvc,
		Validate:   validate,
		Translator: translator,
	})

	os.Exit(m.Run())
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	session  string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func do(tt httpTest) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
	if tt.session != "" {
		req.Header.Set("X-Session-Id", tt.session)
	}
	app.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T, usr user.User, sessionID ...string) string {
	t.Helper()
	var sid string
	if len(sessionID) > 0 {
		sid = sessionID[0]
	}
	token, err := echoapi.GenerateToken(conf, echoapi.GetUserClaims(conf, usr, sid))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func getUser(t *testing.T, email string) user.User {
	t.Helper()
	usr, err := usrSvc.GetByEmail(email)
	if err != nil {
		t.Fatalf("getUser(%s): %v", email, err)
	}
	return usr
}

func beginSession(t *testing.T) session.Session {
	t.Helper()
	s, err := sessSvc.Begin()
	if err != nil {
		t.Fatalf("beginSession(): %v", err)
	}
	return s
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) session.Session {
	t.Helper()
	var s session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decodeSession(): %v; body %s", err, rec.Body.String())
	}
	return s
}
