package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
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

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up storage; all state is in memory and lost on restart
	db := memdb.Open()
	if err := memdb.Seed(db); err != nil {
		logger.Fatal(fmt.Sprintf("seeding storage: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(memdb.NewUserRepository(db), mailSvc, conf)
	sessSvc := session.NewService(memdb.NewSessionRepository(db))
	msgSvc := messaging.NewService(memdb.NewMessagingRepository(db))
	vaultSvc := vault.NewService(memdb.NewVaultRepository(db))
	schedSvc := schedule.NewService(memdb.NewScheduleRepository(db))
	attSvc := attendance.NewService(memdb.NewAttendanceRepository(db))
	acadSvc := academics.NewService(memdb.NewAcademicsRepository(db))
	commSvc := community.NewService(memdb.NewCommunityRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	portal.InitValidators(validate, translator)
	session.InitValidators(validate, translator)

	core.ParseEmailTemplates(conf, logger)

	user.LoadCommonPasswords(logger)

	// the prototype's simulated boot delay
	if conf.Mock.StartupDelay > 0 {
		time.Sleep(conf.Mock.StartupDelay)
	}

	// period clock; its goroutine stops with the main context
	clockCtx, clockCancel := context.WithCancel(context.Background())
	defer clockCancel()
	clock := schedule.NewClock(schedSvc, time.Minute)
	clock.Start(clockCtx)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			SessionSvc: sessSvc,
			MsgSvc:     msgSvc,
			VaultSvc:   vaultSvc,
			SchedSvc:   schedSvc,
			SchedClock: clock,
			AttSvc:     attSvc,
			AcadSvc:    acadSvc,
			CommSvc:    commSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// stop the period clock first
		clockCancel()
		<-clock.Stopped()

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
