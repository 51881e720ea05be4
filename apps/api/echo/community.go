package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/community"
	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

type communityApi struct {
	svc      *community.Service
	users    user.ServiceInterface
	validate *validator.Validate
}

// registerCommunityAPI mounts the feed and the connections directory.
func registerCommunityAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *community.Service,
	users user.ServiceInterface,
	validate *validator.Validate,
) {
	api := communityApi{svc: svc, users: users, validate: validate}

	fg := g.Group("/feed", jwt, tabMiddleware(portal.ModuleFeed))
	fg.GET("", api.queryFeed)
	fg.POST("", api.publish)
	fg.POST("/:id/like", api.like)
	fg.POST("/:id/flag", api.flag)
	fg.DELETE("/:id", api.destroyPost)

	cg := g.Group("/connections", jwt, tabMiddleware(portal.ModuleConnections))
	cg.GET("", api.queryConnections)
	cg.POST("", api.connect)
	cg.DELETE("/:id", api.disconnect)
}

// Feed

func (api *communityApi) queryFeed(ctx echo.Context) error {
	posts, err := api.svc.Feed()
	if err != nil {
		return errors.Wrap(err, "querying feed")
	}
	if posts == nil {
		posts = []community.Post{}
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *communityApi) publish(ctx echo.Context) error {
	var data community.NewPost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPost")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	p, err := api.svc.Publish(usr, data)
	if err != nil {
		return errors.Wrap(err, "publishing post")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *communityApi) like(ctx echo.Context) error {
	p, err := api.svc.Like(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == community.ErrPostNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "liking post")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *communityApi) flag(ctx echo.Context) error {
	p, err := api.svc.Flag(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == community.ErrPostNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "flagging post")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *communityApi) destroyPost(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.DeletePost(usr, ctx.Param("id")); err != nil {
		switch errors.Cause(err) {
		case community.ErrPostNotFound:
			return errHttpNotFound
		case community.ErrNotAuthor:
			return errHttpForbidden
		}
		return errors.Wrap(err, "deleting post")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Connections

func (api *communityApi) queryConnections(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	conns, err := api.svc.Connections(usr)
	if err != nil {
		return errors.Wrap(err, "querying connections")
	}
	if conns == nil {
		conns = []community.Connection{}
	}
	return ctx.JSON(http.StatusOK, conns)
}

func (api *communityApi) connect(ctx echo.Context) error {
	var data community.NewConnection
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewConnection")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	c, err := api.svc.Connect(usr, data)
	if err != nil {
		return errors.Wrap(err, "connecting")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *communityApi) disconnect(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.Disconnect(usr, ctx.Param("id")); err != nil {
		if errors.Cause(err) == community.ErrConnectionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "disconnecting")
	}
	return ctx.NoContent(http.StatusNoContent)
}
