package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
	"github.com/elimuhub/elimu/core/vault"
)

type vaultApi struct {
	svc      *vault.Service
	users    user.ServiceInterface
	validate *validator.Validate
}

func registerVaultAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *vault.Service,
	users user.ServiceInterface,
	validate *validator.Validate,
) {
	api := vaultApi{svc: svc, users: users, validate: validate}

	vg := g.Group("/vault", jwt, tabMiddleware(portal.ModuleVault))
	vg.GET("/files", api.query)
	vg.POST("/files", api.create)
	vg.DELETE("/files/:id", api.destroy)
}

func (api *vaultApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	files, err := api.svc.List(usr, portal.Scope(ctx.QueryParam("scope")))
	if err != nil {
		return errors.Wrap(err, "listing files")
	}
	if files == nil {
		files = []vault.File{}
	}
	return ctx.JSON(http.StatusOK, files)
}

func (api *vaultApi) create(ctx echo.Context) error {
	var data vault.NewFile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFile")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	f, err := api.svc.Add(usr, data)
	if err != nil {
		return errors.Wrap(err, "adding file")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *vaultApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.Delete(usr, ctx.Param("id")); err != nil {
		switch errors.Cause(err) {
		case vault.ErrNotFound:
			return errHttpNotFound
		case vault.ErrNotOwner:
			return errHttpForbidden
		}
		return errors.Wrap(err, "deleting file")
	}
	return ctx.NoContent(http.StatusNoContent)
}
