package webapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openkasse/cashierd/internal/catalog"
	"github.com/openkasse/cashierd/internal/checkout"
)

type checkoutItemPayload struct {
	ArticleID int64 `json:"article_id,string" form:"article_id"`
	Quantity  int   `json:"quantity" form:"quantity"`
}

func (s *Server) listCheckoutItems(c echo.Context) error {
	items, err := s.app.Checkout().CartItems(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query cart items", err.Error())
	}
	return ok(c, items)
}

func (s *Server) addCheckoutItem(c echo.Context) error {
	var payload checkoutItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if payload.Quantity < 1 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be at least 1", nil)
	}

	ctx := c.Request().Context()
	article, err := s.app.Catalog().Article(ctx, payload.ArticleID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Article does not exist", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load article", err.Error())
	}

	if err := s.app.Checkout().AddArticle(ctx, article, payload.Quantity); err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotFound):
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Article or cart no longer exists", nil)
		case errors.Is(err, checkout.ErrDuplicateItem):
			return fail(c, http.StatusConflict, "DUPLICATE_ITEM", "Cart item already exists", nil)
		default:
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add article", err.Error())
		}
	}

	items, err := s.app.Checkout().CartItems(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query cart items", err.Error())
	}
	return ok(c, items)
}

func (s *Server) removeCheckoutItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID", nil)
	}

	ctx := c.Request().Context()
	if err := s.app.Checkout().RemoveArticle(ctx, id); err != nil {
		switch {
		case errors.Is(err, checkout.ErrNoActiveCart):
			return fail(c, http.StatusBadRequest, "NO_ACTIVE_CART", "No checkout in progress", nil)
		case errors.Is(err, checkout.ErrNotFound):
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Cart item not found", nil)
		default:
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove cart item", err.Error())
		}
	}

	items, err := s.app.Checkout().CartItems(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query cart items", err.Error())
	}
	return ok(c, items)
}

func (s *Server) resetCheckout(c echo.Context) error {
	if err := s.app.Checkout().Reset(c.Request().Context()); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reset checkout", err.Error())
	}
	return ok(c, nil)
}

func (s *Server) finalizeCheckout(c echo.Context) error {
	receipt, err := s.app.Checkout().Checkout(c.Request().Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNoActiveCart):
			return fail(c, http.StatusBadRequest, "NO_ACTIVE_CART", "No checkout in progress", nil)
		case errors.Is(err, checkout.ErrEmptyCart):
			return fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart has no items", nil)
		default:
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to finalize checkout", err.Error())
		}
	}

	return ok(c, map[string]interface{}{
		"receipt":  receipt,
		"total":    receipt.Total(),
		"markdown": checkout.RenderMarkdown(receipt),
	})
}
