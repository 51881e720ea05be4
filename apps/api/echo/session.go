package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/session"
)

// sessionIDHeader carries the portal session ID; anonymous navigation works
// without a JWT, the session alone identifies the browser.
var sessionIDHeader = "X-Session-Id"

type sessionApi struct {
	svc      session.ServiceInterface
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, svc session.ServiceInterface, validate *validator.Validate) {
	api := sessionApi{svc: svc, validate: validate}

	sg := g.Group("/session")
	sg.GET("", api.retrieve)
	sg.POST("/navigate", api.navigate)
	sg.POST("/tab", api.selectTab)
}

// retrieve returns the current session state, beginning a fresh anonymous
// session when the client presents none.
func (api *sessionApi) retrieve(ctx echo.Context) error {
	id := ctx.Request().Header.Get(sessionIDHeader)
	if id == "" {
		s, err := api.svc.Begin()
		if err != nil {
			return errors.Wrap(err, "beginning session")
		}
		return ctx.JSON(http.StatusOK, s)
	}

	s, err := api.svc.Get(id)
	if err != nil {
		if errors.Cause(err) == session.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting session")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *sessionApi) navigate(ctx echo.Context) error {
	id := ctx.Request().Header.Get(sessionIDHeader)
	if id == "" {
		return errSessionRequired
	}

	var data NavigateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NavigateRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.NavigateTo(id, data.View)
	if err != nil {
		if errors.Cause(err) == session.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "navigating")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *sessionApi) selectTab(ctx echo.Context) error {
	id := ctx.Request().Header.Get(sessionIDHeader)
	if id == "" {
		return errSessionRequired
	}

	var data SelectTabRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectTabRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.SelectTab(id, data.Tab)
	if err != nil {
		if errors.Cause(err) == session.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "selecting tab")
	}
	return ctx.JSON(http.StatusOK, s)
}

type (
	NavigateRequest struct {
		View session.NavigationState `json:"view" validate:"required,view"`
	}

	SelectTabRequest struct {
		Tab portal.ModuleID `json:"tab" validate:"required,tab"`
	}
)

func (nr NavigateRequest) Validate(validate *validator.Validate) error { return validate.Struct(nr) }

func (sr SelectTabRequest) Validate(validate *validator.Validate) error { return validate.Struct(sr) }
