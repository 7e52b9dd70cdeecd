package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/steliasaustin/outreach/core/volunteer"
)

type volunteerApi struct {
	opts *Options
}

func registerVolunteerAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := volunteerApi{opts: opts}

	vg := g.Group("/volunteers", jwt, staffMiddleware())
	vg.GET("/:id/history", api.history)
}

func (api *volunteerApi) history(ctx echo.Context) error {
	entries, err := api.opts.VolunteerSvc.History(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []volunteer.HistoryEntry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}
