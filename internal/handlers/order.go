package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcanteen/canteen-api/internal/logging"
	"github.com/smartcanteen/canteen-api/internal/models"
	"github.com/smartcanteen/canteen-api/internal/service/order"
)

// OwnerHeader carries the requester identity on owner-only routes. The
// value is compared against the configured owner email, nothing stronger.
const OwnerHeader = "x-owner-email"

type OrderHandler struct {
	Svc *order.Service
}

type createOrderRequest struct {
	UserID        string           `json:"userId"`
	Items         models.CartItems `json:"items"`
	Total         *float64         `json:"total"`
	PaymentMethod string           `json:"paymentMethod"`
	PaymentStatus string           `json:"paymentStatus"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_create")

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	ord, rec, err := h.Svc.Create(ctx, order.CreateInput{
		UserID:        req.UserID,
		Items:         req.Items,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		if errors.Is(err, order.ErrMissingFields) {
			l.Warn("create_order_error", "status", 400, "reason", "missing_fields")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields: userId, items, total"})
		}
		l.Error("create_order_error", "status", 500, "reason", "db_error", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order"})
	}

	l.Info("create_order_success", "order_id", ord.ID, "total", ord.Total)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "order": ord, "receipt": rec})
}

func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_list_user")

	orders, err := h.Svc.ListForUser(ctx, c.Param("userId"))
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_list_all")

	orders, err := h.Svc.ListAll(ctx, c.Request().Header.Get(OwnerHeader))
	if err != nil {
		if errors.Is(err, order.ErrUnauthorized) {
			l.Warn("list_all_orders_error", "status", 403, "reason", "not_owner")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized. Only owner can access all orders."})
		}
		l.Error("list_all_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_update_status")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	ord, err := h.Svc.UpdateStatus(ctx, c.Param("orderId"), req.Status, c.Request().Header.Get(OwnerHeader))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrUnauthorized):
			l.Warn("update_status_error", "status", 403, "reason", "not_owner")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized. Only owner can update orders."})
		case errors.Is(err, order.ErrInvalidStatus):
			l.Warn("update_status_error", "status", 400, "reason", "invalid_status", "requested", req.Status)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status"})
		case errors.Is(err, order.ErrOrderNotFound):
			l.Warn("update_status_error", "status", 404, "reason", "order_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		default:
			l.Error("update_status_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
		}
	}

	l.Info("update_status_success", "order_id", ord.ID, "new_status", ord.Status)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": ord})
}
