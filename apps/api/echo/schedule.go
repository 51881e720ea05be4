package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/schedule"
	"github.com/elimuhub/elimu/core/user"
)

type scheduleApi struct {
	svc      *schedule.Service
	clock    *schedule.Clock
	users    user.ServiceInterface
	validate *validator.Validate
}

func registerScheduleAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *schedule.Service,
	clock *schedule.Clock,
	users user.ServiceInterface,
	validate *validator.Validate,
) {
	api := scheduleApi{svc: svc, clock: clock, users: users, validate: validate}

	sg := g.Group("/schedule", jwt, tabMiddleware(portal.ModuleSchedule))
	sg.GET("/periods", api.query)
	sg.POST("/periods", api.create, staffMiddleware())
	sg.PUT("/periods/:id", api.update, staffMiddleware())
	sg.DELETE("/periods/:id", api.destroy, staffMiddleware())
	sg.GET("/current", api.current)
}

func (api *scheduleApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	periods, err := api.svc.List(usr, portal.Scope(ctx.QueryParam("scope")))
	if err != nil {
		return errors.Wrap(err, "listing periods")
	}
	if periods == nil {
		periods = []schedule.Period{}
	}
	return ctx.JSON(http.StatusOK, periods)
}

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewPeriod
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPeriod")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	p, err := api.svc.Create(usr, data)
	if err != nil {
		return errors.Wrap(err, "creating period")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *scheduleApi) update(ctx echo.Context) error {
	var data schedule.UpdatePeriod
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePeriod")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == schedule.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating period")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		if errors.Cause(err) == schedule.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting period")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// current exposes the period clock's view of the timetable.
func (api *scheduleApi) current(ctx echo.Context) error {
	p, running := api.clock.Current()
	if !running {
		return ctx.JSON(http.StatusOK, CurrentPeriodResponse{InProgress: false})
	}
	return ctx.JSON(http.StatusOK, CurrentPeriodResponse{InProgress: true, Period: &p})
}

type CurrentPeriodResponse struct {
	InProgress bool             `json:"in_progress"`
	Period     *schedule.Period `json:"period,omitempty"`
}
