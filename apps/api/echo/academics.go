package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core"
	"github.com/elimuhub/elimu/core/academics"
	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

type academicsApi struct {
	svc      *academics.Service
	users    user.ServiceInterface
	validate *validator.Validate
}

// registerAcademicsAPI mounts two tabs off one service: the assignment hub and
// the performance view. Each side carries its own entitlement.
func registerAcademicsAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *academics.Service,
	users user.ServiceInterface,
	validate *validator.Validate,
) {
	api := academicsApi{svc: svc, users: users, validate: validate}

	hg := g.Group("/assignments", jwt, tabMiddleware(portal.ModuleAssignments))
	hg.GET("", api.queryAssignments)
	hg.POST("", api.createAssignment, staffMiddleware())
	hg.DELETE("/:id", api.destroyAssignment, staffMiddleware())
	hg.GET("/:id/submissions", api.querySubmissions)
	hg.POST("/submissions", api.submit)
	hg.PUT("/submissions/:id/grade", api.grade, staffMiddleware())

	pg := g.Group("/performance", jwt, tabMiddleware(portal.ModulePerformance))
	pg.GET("/grades", api.queryGrades)
	pg.GET("/averages", api.queryAverages)
	pg.DELETE("/grades/:id", api.destroyGrade, adminMiddleware())
}

// Assignment hub

func (api *academicsApi) queryAssignments(ctx echo.Context) error {
	assignments, err := api.svc.Assignments()
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []academics.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *academicsApi) createAssignment(ctx echo.Context) error {
	var data academics.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	a, err := api.svc.CreateAssignment(usr, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *academicsApi) destroyAssignment(ctx echo.Context) error {
	if err := api.svc.DeleteAssignments(ctx.Param("id")); err != nil {
		if errors.Cause(err) == academics.ErrAssignmentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *academicsApi) querySubmissions(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	subs, err := api.svc.Submissions(usr, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == academics.ErrAssignmentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying submissions")
	}
	if subs == nil {
		subs = []academics.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *academicsApi) submit(ctx echo.Context) error {
	var data academics.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	s, err := api.svc.Submit(usr, data)
	if err != nil {
		switch errors.Cause(err) {
		case academics.ErrAssignmentNotFound:
			return errHttpNotFound
		case academics.ErrAlreadySubmitted:
			return core.NewValidationError(academics.ErrAlreadySubmitted)
		}
		return errors.Wrap(err, "submitting")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *academicsApi) grade(ctx echo.Context) error {
	var data academics.GradeSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	s, err := api.svc.Grade(usr, ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == academics.ErrSubmissionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "grading submission")
	}
	return ctx.JSON(http.StatusOK, s)
}

// Performance

func (api *academicsApi) queryGrades(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	grades, err := api.svc.Grades(usr, portal.Scope(ctx.QueryParam("scope")))
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []academics.GradeRecord{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *academicsApi) queryAverages(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	avgs, err := api.svc.Performance(usr, portal.Scope(ctx.QueryParam("scope")))
	if err != nil {
		return errors.Wrap(err, "computing averages")
	}
	return ctx.JSON(http.StatusOK, avgs)
}

func (api *academicsApi) destroyGrade(ctx echo.Context) error {
	if err := api.svc.DeleteGrades(ctx.Param("id")); err != nil {
		if errors.Cause(err) == academics.ErrGradeNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
