package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core/announcement"
)

type announcementApi struct {
	opts *Options
}

func registerAnnouncementAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := announcementApi{opts: opts}

	ag := g.Group("/announcements")

	// un-authed endpoints
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)

	// authed endpoints
	sg := ag.Group("", jwt, staffMiddleware())
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *announcementApi) query(ctx echo.Context) error {
	anns, err := api.opts.AnnouncementSvc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	if anns == nil {
		anns = []announcement.Announcement{}
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *announcementApi) retrieve(ctx echo.Context) error {
	ann, err := api.opts.AnnouncementSvc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *announcementApi) create(ctx echo.Context) error {
	var data announcement.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}

	ctxUsr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ann, err := api.opts.AnnouncementSvc.Create(ctx.Request().Context(), ctxUsr.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ann)
}

func (api *announcementApi) update(ctx echo.Context) error {
	var data announcement.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}

	ann, err := api.opts.AnnouncementSvc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	if err := api.opts.AnnouncementSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
