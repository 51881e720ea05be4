package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/attendance"
	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

type attendanceApi struct {
	svc      *attendance.Service
	users    user.ServiceInterface
	validate *validator.Validate
}

func registerAttendanceAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *attendance.Service,
	users user.ServiceInterface,
	validate *validator.Validate,
) {
	api := attendanceApi{svc: svc, users: users, validate: validate}

	ag := g.Group("/attendance", jwt, tabMiddleware(portal.ModuleAttendance))
	ag.GET("/records", api.query)
	ag.POST("/records", api.mark, staffMiddleware())
	ag.PUT("/records/:id", api.setStatus, staffMiddleware())
	ag.DELETE("/records/:id", api.destroy, staffMiddleware())
	ag.GET("/summary", api.summary)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	records, err := api.svc.List(usr, portal.Scope(ctx.QueryParam("scope")))
	if err != nil {
		return errors.Wrap(err, "listing records")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.MarkAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	r, err := api.svc.Mark(usr, data)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *attendanceApi) setStatus(ctx echo.Context) error {
	var data attendance.SetStatus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetStatus")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	r, err := api.svc.SetStatus(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == attendance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "setting status")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		if errors.Cause(err) == attendance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting record")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *attendanceApi) summary(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	s, err := api.svc.Summary(usr, portal.Scope(ctx.QueryParam("scope")))
	if err != nil {
		return errors.Wrap(err, "summarizing attendance")
	}
	return ctx.JSON(http.StatusOK, s)
}
