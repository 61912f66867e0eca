package webapi

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/openkasse/cashierd/internal/app"
)

// Server hosts the HTTP surface consumed by the terminal front-end.
type Server struct {
	app  *app.Application
	root *echo.Echo
}

func NewServer(application *app.Application) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(zapLogger())

	s := &Server{app: application, root: e}
	s.initRouter()
	return s
}

func (s *Server) initRouter() {
	api := s.root.Group("/api")

	api.GET("/catalog/categories", s.listCategories)
	api.POST("/catalog/categories", s.createCategory)
	api.DELETE("/catalog/categories/:id", s.deleteCategory)

	api.GET("/catalog/articles", s.listArticles)
	api.POST("/catalog/articles", s.createArticle)
	api.DELETE("/catalog/articles/:id", s.deleteArticle)

	api.GET("/checkout/items", s.listCheckoutItems)
	api.POST("/checkout/items", s.addCheckoutItem)
	api.DELETE("/checkout/items/:id", s.removeCheckoutItem)
	api.POST("/checkout/reset", s.resetCheckout)
	api.POST("/checkout/finalize", s.finalizeCheckout)

	api.GET("/purchases", s.listPurchases)
	api.GET("/purchases/:id/items", s.listPurchaseItems)
	api.GET("/purchases/:id/receipt", s.getPurchaseReceipt)
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.root
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.app.Config().Web.Host, s.app.Config().Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return s.root.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

func zapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
