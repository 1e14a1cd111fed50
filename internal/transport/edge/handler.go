// Package edge is the function-per-request adapter: one net/http handler
// dispatching on the request path, suitable for FaaS runtimes that hand
// the function a raw request. It shares every service with the echo
// server; only the dispatch differs.
package edge

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/smartcanteen/canteen-api/internal/logging"
	"github.com/smartcanteen/canteen-api/internal/menu"
	"github.com/smartcanteen/canteen-api/internal/models"
	"github.com/smartcanteen/canteen-api/internal/service/auth"
	"github.com/smartcanteen/canteen-api/internal/service/order"
)

const ownerHeader = "x-owner-email"

type Handler struct {
	Auth   *auth.Service
	Orders *order.Service
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type, x-owner-email")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	rest, ok := strings.CutPrefix(path, "/api")
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
		return
	}

	switch {
	case r.Method == http.MethodGet && rest == "/healthz":
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "message": "Smart Food Canteen API is running"})
	case r.Method == http.MethodGet && rest == "/menu":
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"items":      menu.Items(r.URL.Query().Get("category")),
			"categories": menu.Categories(),
		})
	case r.Method == http.MethodPost && rest == "/login":
		h.login(w, r)
	case r.Method == http.MethodPost && rest == "/orders":
		h.createOrder(w, r)
	case r.Method == http.MethodGet && rest == "/orders/all":
		h.listAllOrders(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(rest, "/orders/"):
		h.listUserOrders(w, r, strings.TrimPrefix(rest, "/orders/"))
	case r.Method == http.MethodPatch && strings.HasPrefix(rest, "/orders/"):
		h.updateStatus(w, r, strings.TrimPrefix(rest, "/orders/"))
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	user, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmailFormat):
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid email format"})
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "User not found"})
		default:
			logging.FromContext(r.Context()).Error("login_failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Server error"})
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string           `json:"userId"`
		Items         models.CartItems `json:"items"`
		Total         *float64         `json:"total"`
		PaymentMethod string           `json:"paymentMethod"`
		PaymentStatus string           `json:"paymentStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	ord, rec, err := h.Orders.Create(r.Context(), order.CreateInput{
		UserID:        req.UserID,
		Items:         req.Items,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		if errors.Is(err, order.ErrMissingFields) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing required fields: userId, items, total"})
			return
		}
		logging.FromContext(r.Context()).Error("create_order_failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to create order"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "order": ord, "receipt": rec})
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListAll(r.Context(), r.Header.Get(ownerHeader))
	if err != nil {
		if errors.Is(err, order.ErrUnauthorized) {
			writeJSON(w, http.StatusForbidden, map[string]any{"error": "Unauthorized. Only owner can access all orders."})
			return
		}
		logging.FromContext(r.Context()).Error("list_all_orders_failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to fetch"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

func (h *Handler) listUserOrders(w http.ResponseWriter, r *http.Request, userID string) {
	orders, err := h.Orders.ListForUser(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("list_orders_failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to fetch"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, orderID string) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	ord, err := h.Orders.UpdateStatus(r.Context(), orderID, req.Status, r.Header.Get(ownerHeader))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrUnauthorized):
			writeJSON(w, http.StatusForbidden, map[string]any{"error": "Unauthorized. Only owner can update orders."})
		case errors.Is(err, order.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid status"})
		case errors.Is(err, order.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Order not found"})
		default:
			logging.FromContext(r.Context()).Error("update_status_failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to update order"})
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": ord})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
