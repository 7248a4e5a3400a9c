package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/watch"
)

type watchApi struct {
	svc      watch.Service
	validate *validator.Validate
}

func registerWatchAPI(g *echo.Group, staff echo.MiddlewareFunc, svc watch.Service, validate *validator.Validate) {
	api := watchApi{
		svc:      svc,
		validate: validate,
	}

	wg := g.Group("/watches")

	wg.POST("", api.create)

	// staff endpoints
	wg.GET("", api.query, staff)
	wg.DELETE("", api.destroyMultiple, staff)
}

// Handlers

func (api *watchApi) create(ctx echo.Context) error {
	var data watch.NewWatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewWatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	w, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating watch")
	}
	return ctx.JSON(http.StatusCreated, w)
}

func (api *watchApi) query(ctx echo.Context) error {
	watches, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying watches")
	}
	if watches == nil {
		watches = []watch.Watch{}
	}
	return ctx.JSON(http.StatusOK, watches)
}

func (api *watchApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting watches")
	}
	return ctx.NoContent(http.StatusNoContent)
}
