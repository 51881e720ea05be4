package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/messaging"
	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

type messagingApi struct {
	svc      *messaging.Service
	users    user.ServiceInterface
	validate *validator.Validate
}

func registerMessagingAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *messaging.Service,
	users user.ServiceInterface,
	validate *validator.Validate,
) {
	api := messagingApi{svc: svc, users: users, validate: validate}

	mg := g.Group("/messenger", jwt, tabMiddleware(portal.ModuleMessenger))
	mg.GET("/threads", api.queryThreads)
	mg.POST("/threads", api.startThread)
	mg.GET("/threads/:id/messages", api.queryMessages)
	mg.POST("/messages", api.send)
	mg.GET("/unread", api.unread)
	mg.DELETE("/messages", api.destroyMessages, adminMiddleware())
}

func (api *messagingApi) queryThreads(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	threads, err := api.svc.Threads(usr)
	if err != nil {
		return errors.Wrap(err, "querying threads")
	}
	if threads == nil {
		threads = []messaging.Thread{}
	}
	return ctx.JSON(http.StatusOK, threads)
}

func (api *messagingApi) startThread(ctx echo.Context) error {
	var data messaging.NewThread
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewThread")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	// only leadership may open the broadcast channel
	if data.Kind == messaging.ThreadBroadcast && !usr.IsAdmin() {
		return errHttpForbidden
	}

	t, err := api.svc.StartThread(usr, data)
	if err != nil {
		return errors.Wrap(err, "starting thread")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *messagingApi) queryMessages(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	msgs, err := api.svc.Messages(ctx.Param("id"), usr)
	if err != nil {
		switch errors.Cause(err) {
		case messaging.ErrThreadNotFound:
			return errHttpNotFound
		case messaging.ErrNotParticipant:
			return errHttpForbidden
		}
		return errors.Wrap(err, "querying messages")
	}
	if msgs == nil {
		msgs = []messaging.Message{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *messagingApi) send(ctx echo.Context) error {
	var data messaging.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	m, err := api.svc.Send(usr, data)
	if err != nil {
		switch errors.Cause(err) {
		case messaging.ErrThreadNotFound:
			return errHttpNotFound
		case messaging.ErrNotParticipant:
			return errHttpForbidden
		}
		return errors.Wrap(err, "sending message")
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *messagingApi) unread(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	count, err := api.svc.Unread(usr)
	if err != nil {
		return errors.Wrap(err, "counting unread")
	}
	return ctx.JSON(http.StatusOK, UnreadResponse{Unread: count})
}

func (api *messagingApi) destroyMessages(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.DeleteMessages(query.IDs...); err != nil {
		if errors.Cause(err) == messaging.ErrMessageNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting messages")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type UnreadResponse struct {
	Unread int `json:"unread"`
}
