package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/elimuhub/elimu/core"
	"github.com/elimuhub/elimu/core/academics"
	"github.com/elimuhub/elimu/core/attendance"
	"github.com/elimuhub/elimu/core/community"
	"github.com/elimuhub/elimu/core/messaging"
	"github.com/elimuhub/elimu/core/schedule"
	"github.com/elimuhub/elimu/core/session"
	"github.com/elimuhub/elimu/core/user"
	"github.com/elimuhub/elimu/core/vault"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		UserSvc    user.ServiceInterface
		SessionSvc session.ServiceInterface
		MsgSvc     *messaging.Service
		VaultSvc   *vault.Service
		SchedSvc   *schedule.Service
		SchedClock *schedule.Clock
		AttSvc     *attendance.Service
		AcadSvc    *academics.Service
		CommSvc    *community.Service
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		jwtConf  middleware.JWTConfig
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		jwtConf:  newJWTConfig(deps.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.jwtConf)

	registerSessionAPI(v1, s.deps.SessionSvc, s.deps.Validate)
	registerUserAPI(v1, jwt, s.deps.Conf, s.deps.UserSvc, s.deps.SessionSvc, s.deps.Validate)
	registerPortalAPI(v1, jwt)
	registerMessagingAPI(v1, jwt, s.deps.MsgSvc, s.deps.UserSvc, s.deps.Validate)
	registerVaultAPI(v1, jwt, s.deps.VaultSvc, s.deps.UserSvc, s.deps.Validate)
	registerScheduleAPI(v1, jwt, s.deps.SchedSvc, s.deps.SchedClock, s.deps.UserSvc, s.deps.Validate)
	registerAttendanceAPI(v1, jwt, s.deps.AttSvc, s.deps.UserSvc, s.deps.Validate)
	registerAcademicsAPI(v1, jwt, s.deps.AcadSvc, s.deps.UserSvc, s.deps.Validate)
	registerCommunityAPI(v1, jwt, s.deps.CommSvc, s.deps.UserSvc, s.deps.Validate)
}

// Start runs the listener; a listener error lands on Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

// Errors receives fatal listener errors.
func (s *Server) Errors() <-chan error { return s.errors }

// ShutdownSignal receives OS signals and internal shutdown requests.
func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// SignalShutdown requests a graceful shutdown from within, on integrity errors.
func (s *Server) SignalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Elimu API!")
}
