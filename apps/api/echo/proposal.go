package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/event"
)

type proposalApi struct {
	opts *Options
}

func registerProposalAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := proposalApi{opts: opts}

	pg := g.Group("/proposals", jwt)
	pg.POST("", api.create)
	pg.GET("", api.query)
	pg.GET("/:id", api.retrieve)
	pg.DELETE("/:id", api.destroy)
	pg.PUT("/:id/approve", api.approve, staffMiddleware())
	pg.PUT("/:id/decline", api.decline, staffMiddleware())
}

// create submits a community-organization event; it stays pending until
// approved.
func (api *proposalApi) create(ctx echo.Context) error {
	var data ProposalRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProposalRequest")
	}
	data.Organization = core.CleanString(data.Organization)
	if data.Organization == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "organization", Error: "organization is required"})
	}
	if err := data.NewEvent.Validate(api.opts.Validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ev, err := api.opts.EventSvc.Propose(ctx.Request().Context(), ctxUsr.ID, data.Organization, data.NewEvent)
	if err != nil {
		return errors.Wrap(err, "creating proposal")
	}
	return ctx.JSON(http.StatusCreated, ev)
}

// query lists all pending proposals for staff, or the caller's own
// submissions for everyone else.
func (api *proposalApi) query(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var events []event.Event
	if isStaff(ctxUsr) {
		events, err = api.opts.EventSvc.PendingProposals(ctx.Request().Context())
	} else {
		events, err = api.opts.EventSvc.Proposals(ctx.Request().Context(), ctxUsr.ID)
	}
	if err != nil {
		return errors.Wrap(err, "querying proposals")
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

// retrieve fetches a single proposal; staff see any, everyone else only
// their own.
func (api *proposalApi) retrieve(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ev, err := api.opts.EventSvc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if !ev.IsExternal {
		return event.ErrNotFound
	}
	if !isStaff(ctxUsr) && ev.OrganizerID != ctxUsr.ID {
		return errHttpForbidden
	}
	return ctx.JSON(http.StatusOK, ev)
}

// destroy removes a proposal. Staff can remove any; community users only
// their own submissions still in draft.
func (api *proposalApi) destroy(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ev, err := api.opts.EventSvc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if !ev.IsExternal {
		return event.ErrNotFound
	}
	if !isStaff(ctxUsr) && (ev.OrganizerID != ctxUsr.ID || ev.Status != event.StatusDraft) {
		return errHttpForbidden
	}

	if err := api.opts.EventSvc.Delete(ctx.Request().Context(), ev.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *proposalApi) approve(ctx echo.Context) error {
	ev, err := api.opts.EventSvc.Approve(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *proposalApi) decline(ctx echo.Context) error {
	ev, err := api.opts.EventSvc.Decline(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ev)
}
