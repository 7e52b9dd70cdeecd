package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/volunteer"
)

type eventApi struct {
	opts *Options
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := eventApi{opts: opts}

	eg := g.Group("/events")

	// un-authed endpoints
	eg.GET("", api.query)
	eg.GET("/calendar", api.calendar)
	eg.GET("/:id", api.retrieve)
	eg.POST("/:id/rsvp", api.signUp)
	eg.DELETE("/:id/rsvp", api.cancelSignUp)

	// authed endpoints
	ag := eg.Group("", jwt, staffMiddleware())
	ag.POST("", api.create)
	ag.PUT("/:id", api.update)
	ag.GET("/:id/rsvps", api.queryRSVPs)
	ag.DELETE("/:id", api.destroy, adminMiddleware())
}

// query lists published upcoming events, soonest first.
func (api *eventApi) query(ctx echo.Context) error {
	events, err := api.opts.EventSvc.Upcoming(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

// calendar returns the occurrence feed with recurring events expanded.
func (api *eventApi) calendar(ctx echo.Context) error {
	occurrences, err := api.opts.EventSvc.Calendar(ctx.Request().Context(), time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "expanding calendar")
	}
	if occurrences == nil {
		occurrences = []event.Occurrence{}
	}
	return ctx.JSON(http.StatusOK, occurrences)
}

// eventDetail is the public detail payload; the confirmed signup count lets
// clients show remaining spots.
type eventDetail struct {
	event.Event
	RSVPCount int `json:"rsvpCount"`
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	ev, err := api.opts.EventSvc.GetPublished(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	count, err := api.opts.VolunteerSvc.ConfirmedCount(ctx.Request().Context(), ev.ID)
	if err != nil {
		return errors.Wrap(err, "counting confirmed RSVPs")
	}
	return ctx.JSON(http.StatusOK, eventDetail{Event: ev, RSVPCount: count})
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ev, err := api.opts.EventSvc.Create(ctx.Request().Context(), ctxUsr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, ev)
}

func (api *eventApi) update(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	ev, err := api.opts.EventSvc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	if err := api.opts.EventSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// signUp is the public volunteer signup endpoint; no account required.
func (api *eventApi) signUp(ctx echo.Context) error {
	var data volunteer.SignUp
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SignUp")
	}

	rsvp, err := api.opts.VolunteerSvc.SignUp(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, rsvp)
}

func (api *eventApi) cancelSignUp(ctx echo.Context) error {
	email := core.CleanString(ctx.QueryParam("email"), true /* lower */)
	if email == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "email", Error: "email is required"})
	}

	if err := api.opts.VolunteerSvc.Cancel(ctx.Request().Context(), ctx.Param("id"), email); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *eventApi) queryRSVPs(ctx echo.Context) error {
	rsvps, err := api.opts.VolunteerSvc.EventRSVPs(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying event RSVPs")
	}
	if rsvps == nil {
		rsvps = []volunteer.RSVP{}
	}
	return ctx.JSON(http.StatusOK, rsvps)
}
