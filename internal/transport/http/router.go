package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcanteen/canteen-api/internal/handlers"
)

type Deps struct {
	AuthHandler  *handlers.AuthHandler
	OrderHandler *handlers.OrderHandler
	MenuHandler  *handlers.MenuHandler
}

func Register(e *echo.Echo, d *Deps) {
	api := e.Group("/api")

	api.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "Smart Food Canteen API is running"})
	})

	api.POST("/login", d.AuthHandler.Login)
	api.GET("/menu", d.MenuHandler.GetMenu)

	api.POST("/orders", d.OrderHandler.CreateOrder)
	// /orders/all must be registered before /orders/:userId so "all" is
	// not captured as a user id.
	api.GET("/orders/all", d.OrderHandler.GetAllOrders)
	api.GET("/orders/:userId", d.OrderHandler.GetUserOrders)
	api.PATCH("/orders/:orderId", d.OrderHandler.UpdateStatus)
}
