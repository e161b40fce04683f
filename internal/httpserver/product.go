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

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func (h *ProductHTTP) ListActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_active")

	products, err := h.Svc.ListActive(ctx)
	if err != nil {
		l.Error("list_active_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	if len(products) == 0 {
		return c.JSON(http.StatusOK, false)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_all")

	products, err := h.Svc.ListAll(ctx, IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			l.Warn("list_all_error", "status", 403)
			return c.JSON(http.StatusForbidden, false)
		}
		l.Error("list_all_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("get_error", "status", 400, "reason", "invalid id")
		return c.JSON(http.StatusBadRequest, false)
	}

	product, err := h.Svc.Get(ctx, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, false)
		}
		l.Error("get_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) keyword(c echo.Context) string {
	var req transport.SearchRequest
	if err := c.Bind(&req); err == nil && req.Keyword != "" {
		return req.Keyword
	}
	return c.QueryParam("keyword")
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	products, err := h.Svc.Search(ctx, h.keyword(c))
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) SearchAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_all")

	products, err := h.Svc.SearchAll(ctx, h.keyword(c), IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			l.Warn("search_all_error", "status", 403)
			return c.JSON(http.StatusForbidden, false)
		}
		l.Error("search_all_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) Sell(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.sell")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("sell_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	product, err := h.Svc.Create(ctx, IsAdmin(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("sell_error", "status", 401)
			return c.JSON(http.StatusUnauthorized, false)
		case errors.Is(err, service.ErrValidation):
			l.Warn("sell_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, false)
		default:
			l.Error("sell_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})
	l.Info("sell_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, true)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("update_error", "status", 400, "reason", "invalid id")
		return c.JSON(http.StatusBadRequest, false)
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	product, err := h.Svc.Update(ctx, IsAdmin(c), uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("update_error", "status", 401)
			return c.JSON(http.StatusUnauthorized, false)
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, false)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_error", "status", 404, "product_id", id)
			return c.JSON(http.StatusNotFound, false)
		default:
			l.Error("update_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})
	l.Info("update_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, true)
}

func (h *ProductHTTP) ChangeAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.change_availability")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("change_availability_error", "status", 400, "reason", "invalid id")
		return c.JSON(http.StatusBadRequest, false)
	}

	product, err := h.Svc.ToggleAvailability(ctx, IsAdmin(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("change_availability_error", "status", 401)
			return c.JSON(http.StatusUnauthorized, false)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("change_availability_error", "status", 404, "product_id", id)
			return c.JSON(http.StatusNotFound, false)
		default:
			l.Error("change_availability_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_availability_toggled",
		"productID": product.ID,
		"is_active": product.IsActive,
	})
	l.Info("change_availability_success", "product_id", product.ID, "is_active", product.IsActive)
	return c.JSON(http.StatusCreated, true)
}
