package webapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openkasse/cashierd/internal/checkout"
)

func (s *Server) listPurchases(c echo.Context) error {
	carts, err := s.app.History().PaidCarts(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query purchases", err.Error())
	}

	page, pageSize := parsePagination(c)
	total := int64(len(carts))
	offset := (page - 1) * pageSize
	if offset > len(carts) {
		offset = len(carts)
	}
	end := offset + pageSize
	if end > len(carts) {
		end = len(carts)
	}
	return paged(c, carts[offset:end], total, page, pageSize)
}

func (s *Server) listPurchaseItems(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart ID", nil)
	}
	items, err := s.app.History().CartItems(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, checkout.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Cart not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query cart items", err.Error())
	}
	return ok(c, items)
}

func (s *Server) getPurchaseReceipt(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart ID", nil)
	}
	receipt, err := s.app.History().Receipt(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotFound):
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Cart not found", nil)
		case errors.Is(err, checkout.ErrCartNotPaid):
			return fail(c, http.StatusBadRequest, "NOT_PAID", "Cart has not been finalized", nil)
		default:
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build receipt", err.Error())
		}
	}

	return ok(c, map[string]interface{}{
		"receipt":  receipt,
		"total":    receipt.Total(),
		"markdown": checkout.RenderMarkdown(receipt),
	})
}
