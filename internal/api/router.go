package api

import (
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/fishmart/gateway/internal/api/handler"
	"github.com/fishmart/gateway/internal/api/middleware"
	"github.com/fishmart/gateway/internal/core/domain"
	"github.com/fishmart/gateway/internal/core/ports"
	"github.com/fishmart/gateway/internal/session"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Deps collects everything the router needs. Redis and Mongo may be nil;
// the readiness probe reports them as skipped.
type Deps struct {
	Sessions    ports.SessionService
	Deliveries  ports.DeliveryClient
	Cookies     *session.CookieManager
	UpstreamURL *url.URL
	LoginLimit  *middleware.LoginRateLimiter
	Redis       *redis.Client
	Mongo       *mongo.Database
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("fishgate"))

	resolve := middleware.Session(d.Cookies, d.Sessions)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Cookies)
	deliveryHandler := handler.NewDeliveryHandler(d.Deliveries)
	proxy := handler.NewProxy(d.UpstreamURL, d.Cookies.Name(), d.Logger)

	// --- Session lifecycle ---
	auth := e.Group("/auth", resolve)
	auth.POST("/login", authHandler.Login, d.LoginLimit.Middleware())
	auth.POST("/signup", authHandler.Signup, d.LoginLimit.Middleware())
	auth.POST("/rider-login", authHandler.RiderLogin, d.LoginLimit.Middleware())
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	// --- Delivery management: admins and riders ---
	deliveries := e.Group("/deliveries", resolve, middleware.Gate(domain.RoleAdmin, domain.RoleRider))
	deliveries.GET("", deliveryHandler.List)
	deliveries.POST("/:id/verify", deliveryHandler.Verify)

	// --- Proxied backend resources ---
	// Orders are visible to any signed-in user; the backend scopes the data.
	orders := e.Group("/fish-orders", resolve, middleware.Gate())
	orders.Any("", proxy)
	orders.Any("/*", proxy)

	// Catalogue, reviews, accounts and rider management are admin-only.
	for _, prefix := range []string{"/fish-products", "/reviews", "/users", "/riders"} {
		g := e.Group(prefix, resolve, middleware.Gate(domain.RoleAdmin))
		g.Any("", proxy)
		g.Any("/*", proxy)
	}

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Redis, d.Mongo)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
