package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcanteen/canteen-api/internal/menu"
)

type MenuHandler struct{}

func (h *MenuHandler) GetMenu(c echo.Context) error {
	items := menu.Items(c.QueryParam("category"))
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"items":      items,
		"categories": menu.Categories(),
	})
}
