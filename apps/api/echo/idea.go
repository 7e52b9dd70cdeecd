package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core/idea"
)

type ideaApi struct {
	opts *Options
}

func registerIdeaAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := ideaApi{opts: opts}

	ig := g.Group("/ideas")

	// un-authed endpoints
	ig.GET("", api.query)
	ig.POST("", api.create)
	ig.POST("/:id/vote", api.vote)

	// authed endpoints
	ag := ig.Group("", jwt, adminMiddleware())
	ag.PUT("/:id/status", api.changeStatus)
	ag.DELETE("/:id", api.destroy)
}

func (api *ideaApi) query(ctx echo.Context) error {
	ideas, err := api.opts.IdeaSvc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying ideas")
	}
	if ideas == nil {
		ideas = []idea.Idea{}
	}
	return ctx.JSON(http.StatusOK, ideas)
}

func (api *ideaApi) create(ctx echo.Context) error {
	var data idea.NewIdea
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewIdea")
	}

	i, err := api.opts.IdeaSvc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, i)
}

// vote toggles the caller's support for an idea.
func (api *ideaApi) vote(ctx echo.Context) error {
	var data VoteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to VoteRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	votes, err := api.opts.IdeaSvc.ToggleVote(ctx.Request().Context(), ctx.Param("id"), data.Email)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, VoteResponse{Votes: votes})
}

func (api *ideaApi) changeStatus(ctx echo.Context) error {
	var data StatusChangeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusChangeRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	if err := api.opts.IdeaSvc.SetStatus(ctx.Request().Context(), ctx.Param("id"), idea.Status(data.Status)); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "idea status updated"})
}

func (api *ideaApi) destroy(ctx echo.Context) error {
	if err := api.opts.IdeaSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
