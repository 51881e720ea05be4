package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
)

type portalApi struct{}

func registerPortalAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	api := portalApi{}

	pg := g.Group("/portal", jwt)
	pg.GET("/tabs", api.tabs)
	pg.GET("/config", api.config)
}

// tabs returns the side navigation for the session role.
func (api *portalApi) tabs(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	return ctx.JSON(http.StatusOK, portal.NavTabs(claims.Role))
}

// config resolves the view configuration for (module, role, scope). The
// resolution is total; an unknown module still yields the fallback config.
func (api *portalApi) config(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	module := portal.ModuleID(ctx.QueryParam("module"))
	if module == "" {
		module = portal.DefaultTab
	}
	scope := portal.Scope(ctx.QueryParam("scope"))

	if !portal.Entitled(claims.Role, module) {
		return errHttpForbidden
	}
	return ctx.JSON(http.StatusOK, portal.Resolve(module, claims.Role, scope))
}
