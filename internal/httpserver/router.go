package httpserver

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"product-details/internal/auth"
	"product-details/internal/domain"
	"product-details/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Resolve(ctx context.Context, ids []string) ([]domain.Product, error)
}

// Deps are the collaborators the router needs.
type Deps struct {
	Catalog  catalogService
	Sessions *session.Store
}

// Options tune cookies, auth and CORS.
type Options struct {
	SessionCookie  string
	SecureCookie   bool
	SessionTTL     time.Duration
	AuthUserHeader string
	CORSOrigins    []string
}

// buildRouter wires routes for the details page and its JSON API.
func buildRouter(logger *zap.Logger, db pinger, deps Deps, opts Options) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Catalog == nil || deps.Sessions == nil {
		return nil, fmt.Errorf("httpserver: catalog and sessions are required")
	}
	if opts.SessionCookie == "" {
		opts.SessionCookie = "sid"
	}
	if opts.AuthUserHeader == "" {
		opts.AuthUserHeader = auth.DefaultHeader
	}

	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(requestID(), requestLogger(logger), gin.Recovery())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, logger))

	h := &detailsHandler{catalog: deps.Catalog, logger: logger}
	readSession := sessionMiddleware(deps.Sessions, opts, false)
	withSession := sessionMiddleware(deps.Sessions, opts, true)
	withAuth := auth.Middleware(opts.AuthUserHeader)

	router.GET("/", h.landing)
	router.GET("/details", readSession, h.show)

	pages := router.Group("", withSession, withAuth)
	pages.POST("/details/selection", h.selectProducts)
	pages.POST("/details/clear", h.clearAll)
	pages.POST("/details/products/:id/remove", h.remove)
	pages.POST("/details/products/:id/cart", h.addToCart)
	pages.POST("/details/products/:id/wishlist", h.addToWishlist)

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = opts.CORSOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders(opts.AuthUserHeader, requestIDHeader)
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}

	api := router.Group("/api/details", cors.New(corsCfg))
	api.GET("", readSession, h.apiShow)
	api.Use(withSession, withAuth)
	api.PUT("/selection", h.apiSelect)
	api.DELETE("", h.apiClearAll)
	api.DELETE("/products/:id", h.apiRemove)
	api.POST("/products/:id/cart", h.apiAddToCart)
	api.POST("/products/:id/wishlist", h.apiAddToWishlist)

	return router, nil
}
