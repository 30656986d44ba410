// File: internal/router/router.go
package router

import (
	"crm-api/internal/cache"
	"crm-api/internal/database"
	"crm-api/internal/handler"
	"crm-api/internal/handler/auth"
	"crm-api/internal/handler/customers"
	"crm-api/internal/metrics"
	"crm-api/internal/middleware"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// Tokens 由 service.TokenService 實作
type Tokens interface {
	auth.TokenIssuer
	middleware.TokenVerifier
}

// Deps 路由需要的所有相依；Cache 與 Limiter 可為 nil
type Deps struct {
	DB      database.DB
	Cache   cache.Cache
	Auth    auth.Authenticator
	Tokens  Tokens
	Limiter middleware.Limiter
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	// 公開端點
	e.GET("/", handler.IndexHandler())
	e.GET("/health", handler.HealthHandler())
	e.GET("/ready", handler.ReadyHandler(d.DB, d.Cache))
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	requireAuth := middleware.RequireAuth(d.Tokens, d.DB)

	// 認證；註冊與登入套用限流
	ah := &auth.Handlers{Auth: d.Auth, Tokens: d.Tokens, Metrics: d.Metrics}
	apiAuth := api.Group("/auth")
	if d.Limiter != nil {
		limit := middleware.RateLimit(d.Limiter, d.Metrics, d.Logger)
		apiAuth.POST("/register", ah.Register(), limit)
		apiAuth.POST("/login", ah.Login(), limit)
	} else {
		apiAuth.POST("/register", ah.Register())
		apiAuth.POST("/login", ah.Login())
	}
	apiAuth.GET("/profile", ah.Profile(), requireAuth)
	apiAuth.POST("/logout", ah.Logout(), requireAuth)

	// 客戶 CRUD，全部限定為目前使用者的資料
	apiCustomers := api.Group("/customers", requireAuth)
	apiCustomers.GET("", customers.ListCustomersHandler(d.DB))
	apiCustomers.POST("", customers.CreateCustomerHandler(d.DB))
	apiCustomers.GET("/:id", customers.GetCustomerHandler(d.DB))
	apiCustomers.PUT("/:id", customers.UpdateCustomerHandler(d.DB))
	apiCustomers.DELETE("/:id", customers.DeleteCustomerHandler(d.DB))
}
