package webapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/openkasse/cashierd/internal/catalog"
)

type categoryPayload struct {
	Name string `json:"name" form:"name"`
}

type articlePayload struct {
	Name       string          `json:"name" form:"name"`
	Price      decimal.Decimal `json:"price" form:"price"`
	CategoryID int64           `json:"category_id,string" form:"category_id"`
}

func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.app.Catalog().Categories(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, categories)
}

func (s *Server) createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	id, err := s.app.Catalog().CreateCategory(c.Request().Context(), payload.Name)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}
	return ok(c, map[string]interface{}{"id": strconv.FormatInt(id, 10)})
}

func (s *Server) deleteCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	if err := s.app.Catalog().DeleteCategory(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

func (s *Server) listArticles(c echo.Context) error {
	var categoryID *int64
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
		}
		categoryID = &id
	}
	q := strings.TrimSpace(c.QueryParam("q"))

	var (
		articles interface{}
		err      error
	)
	if q != "" {
		articles, err = s.app.Catalog().SearchArticles(c.Request().Context(), q)
	} else {
		articles, err = s.app.Catalog().Articles(c.Request().Context(), categoryID)
	}
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query articles", err.Error())
	}
	return ok(c, articles)
}

func (s *Server) createArticle(c echo.Context) error {
	var payload articlePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse article", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.Price.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}

	id, err := s.app.Catalog().CreateArticle(c.Request().Context(), payload.Name, payload.Price, payload.CategoryID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Category does not exist", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create article", err.Error())
	}
	return ok(c, map[string]interface{}{"id": strconv.FormatInt(id, 10)})
}

func (s *Server) deleteArticle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid article ID", nil)
	}
	if err := s.app.Catalog().DeleteArticle(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Article not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete article", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
