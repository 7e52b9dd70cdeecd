package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core/ministry"
)

type ministryApi struct {
	opts *Options
}

func registerMinistryAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := ministryApi{opts: opts}

	mg := g.Group("/ministries")

	// un-authed endpoints
	mg.GET("", api.query)

	// authed endpoints
	ag := mg.Group("", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *ministryApi) query(ctx echo.Context) error {
	mins, err := api.opts.MinistrySvc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying ministries")
	}
	if mins == nil {
		mins = []ministry.Ministry{}
	}
	return ctx.JSON(http.StatusOK, mins)
}

func (api *ministryApi) create(ctx echo.Context) error {
	var data ministry.NewMinistry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMinistry")
	}

	min, err := api.opts.MinistrySvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, min)
}

func (api *ministryApi) update(ctx echo.Context) error {
	var data ministry.NewMinistry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMinistry")
	}

	min, err := api.opts.MinistrySvc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, min)
}

func (api *ministryApi) destroy(ctx echo.Context) error {
	if err := api.opts.MinistrySvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
