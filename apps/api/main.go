package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/announcement"
	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/idea"
	"github.com/steliasaustin/outreach/core/ministry"
	"github.com/steliasaustin/outreach/core/user"
	"github.com/steliasaustin/outreach/core/volunteer"

	echoapi "github.com/steliasaustin/outreach/apps/api/echo"
	emailsvc "github.com/steliasaustin/outreach/services/email"
	logsvc "github.com/steliasaustin/outreach/services/logger"
	"github.com/steliasaustin/outreach/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() {
		if err = database.Close(db); err != nil {
			logger.Error("closing database", err)
		}
	}()
	if err = database.Migrate(db); err != nil {
		logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}

	// set up services
	var sender core.EmailService
	if conf.Debug {
		sender = emailsvc.NewConsoleService(conf, logger)
	} else {
		sender = emailsvc.NewSendgridService(conf, logger)
	}
	mailSvc := emailsvc.NewQueuedService(sender, logger, conf.MailQueueSize)
	defer mailSvc.Stop()

	validate, translator := core.NewValidator()

	eventRepo := database.NewEventRepository(db)
	eventSvc := event.NewService(eventRepo, logger)
	volunteerSvc := volunteer.NewService(
		database.NewVolunteerRepository(db), eventRepo, validate, mailSvc, conf, logger)
	userSvc := user.NewService(database.NewUserRepository(db), validate, logger)
	ideaSvc := idea.NewService(database.NewIdeaRepository(db), validate, logger)
	announcementSvc := announcement.NewService(database.NewAnnouncementRepository(db), validate, logger)
	ministrySvc := ministry.NewService(database.NewMinistryRepository(db), eventRepo, validate)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:         conf.Server.Address(),
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		Shutdown:        func() { shutdown <- syscall.SIGTERM },
		UserSvc:         userSvc,
		EventSvc:        eventSvc,
		VolunteerSvc:    volunteerSvc,
		IdeaSvc:         ideaSvc,
		AnnouncementSvc: announcementSvc,
		MinistrySvc:     ministrySvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err = server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}
