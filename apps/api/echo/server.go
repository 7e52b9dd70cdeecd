package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/announcement"
	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/idea"
	"github.com/steliasaustin/outreach/core/ministry"
	"github.com/steliasaustin/outreach/core/user"
	"github.com/steliasaustin/outreach/core/volunteer"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		// signals main() to gracefully shut the server down
		Shutdown func()

		UserSvc         *user.Service
		EventSvc        *event.Service
		VolunteerSvc    *volunteer.Service
		IdeaSvc         *idea.Service
		AnnouncementSvc *announcement.Service
		MinistrySvc     *ministry.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Shutdown == nil {
		opts.Shutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.Shutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	registerUserAPI(v1, jwt, s.opts)
	registerEventAPI(v1, jwt, s.opts)
	registerProposalAPI(v1, jwt, s.opts)
	registerIdeaAPI(v1, jwt, s.opts)
	registerAnnouncementAPI(v1, jwt, s.opts)
	registerMinistryAPI(v1, jwt, s.opts)
	registerVolunteerAPI(v1, jwt, s.opts)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the St Elias Outreach API!")
}
