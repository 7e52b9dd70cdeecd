package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/user"
)

type userApi struct {
	opts *Options
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := userApi{opts: opts}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", api.login)
	ug.POST("/register", api.register)

	// authed endpoints
	ag := ug.Group("", jwt)
	ag.GET("/me", api.me)
	ag.GET("", api.query, adminMiddleware())
	ag.PUT("/:id/role", api.changeRole, adminMiddleware())
	ag.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), api.opts.Conf, api.opts.UserSvc, data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == errAuthenticationFailed {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(api.opts.Conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

// register creates a community account. Elevated roles are only granted by
// an admin afterwards.
func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}

	usr, err := api.opts.UserSvc.Create(ctx.Request().Context(), data, user.RoleCommunity)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.opts.UserSvc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) changeRole(ctx echo.Context) error {
	var data RoleChangeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RoleChangeRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	// admins cannot demote themselves; another admin must do it
	ctxUsr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if ctxUsr.ID == ctx.Param("id") && data.Role != string(user.RoleAdmin) {
		return core.NewValidationError(nil, core.FieldError{Field: "role", Error: "cannot change your own role"})
	}

	usr, err := api.opts.UserSvc.SetRole(ctx.Request().Context(), ctx.Param("id"), user.Role(data.Role))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if ctxUsr.ID == ctx.Param("id") {
		return core.NewValidationError(errors.New("cannot delete your own account"))
	}
	if err := api.opts.UserSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
