package apis

import (
	"context"
	"net/http"

	"aspirevote-backend/cmd/aspirevote/model"

	"github.com/labstack/echo/v4"
)

type IPinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckAPI struct {
	store IPinger
}

func NewHealthCheckAPI(store IPinger) *HealthCheckAPI {
	return &HealthCheckAPI{
		store: store,
	}
}

func (a *HealthCheckAPI) Setup(g *echo.Group) {
	g.GET("/healthz", a.healthCheck)
}

func (a *HealthCheckAPI) healthCheck(c echo.Context) error {
	err := a.store.Ping(c.Request().Context())
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "healthy",
		},
	)
}
