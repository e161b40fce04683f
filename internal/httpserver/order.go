package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/shop-backend/internal/logging"
	"github.com/avolkov/shop-backend/internal/mykafka"
	"github.com/avolkov/shop-backend/internal/service"
	"github.com/avolkov/shop-backend/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.my_orders")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("my_orders_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	orders, err := h.Svc.MyOrders(ctx, userID)
	if err != nil {
		l.Error("my_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) BuyNow(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.buy_now")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("buy_now_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	var req transport.BuyNowRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("buy_now_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	view, err := h.Svc.BuyNow(ctx, userID, IsAdmin(c), req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("buy_now_error", "status", 401, "reason", "admin caller")
			return c.JSON(http.StatusUnauthorized, false)
		case errors.Is(err, service.ErrValidation):
			l.Warn("buy_now_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, false)
		case errors.Is(err, service.ErrInvalidState):
			l.Warn("buy_now_error", "status", 403, "reason", "product not available", "product_id", req.ProductID)
			return c.JSON(http.StatusForbidden, false)
		default:
			l.Error("buy_now_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "order_events", map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": view.Order.ID,
		"total":   view.Order.TotalAmount,
	})
	l.Info("buy_now_success", "user_id", userID, "order_id", view.Order.ID)
	return c.JSON(http.StatusCreated, true)
}

func (h *OrderHTTP) CheckoutCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("checkout_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	view, err := h.Svc.Checkout(ctx, userID, IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("checkout_error", "status", 401, "reason", "admin caller")
			return c.JSON(http.StatusUnauthorized, false)
		case errors.Is(err, service.ErrInvalidState):
			l.Warn("checkout_error", "status", 400, "reason", "empty cart", "user_id", userID)
			return c.JSON(http.StatusBadRequest, false)
		case errors.Is(err, service.ErrConflict):
			l.Warn("checkout_error", "status", 409, "user_id", userID)
			return c.JSON(http.StatusConflict, false)
		default:
			l.Error("checkout_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "order_events", map[string]any{
		"type":    "cart_checked_out",
		"userID":  userID,
		"orderID": view.Order.ID,
		"total":   view.Order.TotalAmount,
	})
	l.Info("checkout_success", "user_id", userID, "order_id", view.Order.ID)
	return c.JSON(http.StatusCreated, view)
}

func (h *OrderHTTP) AllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.all")

	orders, err := h.Svc.AllOrders(ctx, IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			l.Warn("all_orders_error", "status", 401)
			return c.JSON(http.StatusUnauthorized, false)
		}
		l.Error("all_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, orders)
}
