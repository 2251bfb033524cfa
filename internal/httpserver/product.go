package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/minhtd/product-catalog/internal/logging"
	"github.com/minhtd/product-catalog/internal/mykafka"
	"github.com/minhtd/product-catalog/internal/service"
	"github.com/minhtd/product-catalog/internal/transport"
	"github.com/minhtd/product-catalog/internal/util"
)

type ProductHandler struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	return uint(id), nil
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "bad id")
		return err
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return respond(c, http.StatusOK, "product found", product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products")

	var q transport.ProductQuery
	if err := c.Bind(&q); err != nil {
		l.Warn("list_products_failed", "status", 400, "reason", "invalid query", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		l.Warn("list_products_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}
	// Malformed page params fall back to defaults instead of failing the request.
	q.Page = util.ParseIntDefault(c.QueryParam("page"), 1)
	q.PageSize = util.ParseIntDefault(c.QueryParam("pageSize"), util.DefaultPageSize)

	page, err := h.Svc.ListProducts(ctx, q)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	l.Info("list_products_success", "total", page.Total)
	return respond(c, http.StatusOK, "products listed", page)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("create_product_success", "id", prod.ID)
	return respond(c, http.StatusCreated, "product created", prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "bad id")
		return err
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("update_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("update_product_success", "id", prod.ID)
	return respond(c, http.StatusOK, "product updated", prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "bad id")
		return err
	}

	// delete is idempotent: removing an absent id succeeds
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Error("delete_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "id", id)
	return respond(c, http.StatusOK, "product deleted", nil)
}
