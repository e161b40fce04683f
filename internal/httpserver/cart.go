package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/shop-backend/internal/logging"
	"github.com/avolkov/shop-backend/internal/mykafka"
	"github.com/avolkov/shop-backend/internal/service"
	"github.com/avolkov/shop-backend/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	view, err := h.Svc.ViewCart(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// An absent or fully emptied cart reads as "no cart".
			return c.JSON(http.StatusOK, false)
		}
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	item, err := h.Svc.AddToCart(ctx, userID, IsAdmin(c), req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("add_to_cart_error", "status", 401, "reason", "admin caller")
			return c.JSON(http.StatusUnauthorized, false)
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, false)
		case errors.Is(err, service.ErrInvalidState):
			l.Warn("add_to_cart_error", "status", 403, "reason", "product not available", "product_id", req.ProductID)
			return c.JSON(http.StatusForbidden, false)
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  item.ProductQuantity,
	})
	l.Info("add_to_cart_success", "user_id", userID, "product_id", req.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) IncrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.increment")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("increment_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("increment_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	item, err := h.Svc.IncrementItem(ctx, userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("increment_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, false)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("increment_error", "status", 404, "product_id", req.ProductID)
			return c.JSON(http.StatusNotFound, false)
		default:
			l.Error("increment_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_incremented",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  item.ProductQuantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) DecrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrement")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("decrement_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("decrement_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	item, err := h.Svc.DecrementItem(ctx, userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("decrement_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, false)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("decrement_error", "status", 404, "product_id", req.ProductID)
			return c.JSON(http.StatusNotFound, false)
		default:
			l.Error("decrement_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_decremented",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  item.ProductQuantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("remove_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		l.Warn("remove_error", "status", 400, "reason", "invalid product id")
		return c.JSON(http.StatusBadRequest, false)
	}

	if err := h.Svc.RemoveItem(ctx, userID, uint(productID)); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("remove_error", "status", 404, "product_id", productID)
			return c.JSON(http.StatusNotFound, false)
		case errors.Is(err, service.ErrConflict):
			l.Warn("remove_error", "status", 409, "product_id", productID)
			return c.JSON(http.StatusConflict, false)
		default:
			l.Error("remove_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})
	return c.JSON(http.StatusOK, true)
}
