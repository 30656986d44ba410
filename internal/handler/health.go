// File: internal/handler/health.go
package handler

import (
	"context"
	"net/http"
	"time"

	"crm-api/internal/api"
	"crm-api/internal/cache"
	"crm-api/internal/database"

	"github.com/labstack/echo/v4"
)

const (
	ServiceName = "CRM API"
	Version     = "1.0.0"
)

var timeNow = time.Now

// IndexResponse 根路徑回應
// swagger:model IndexResponse
type IndexResponse struct {
	Message   string            `json:"message" example:"CRM API Server"`
	Version   string            `json:"version" example:"1.0.0"`
	Endpoints map[string]string `json:"endpoints"`
}

// IndexHandler 列出主要端點
// @Summary     API index
// @Tags        health
// @Produce     json
// @Success     200 {object} IndexResponse
// @Router      / [get]
func IndexHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, IndexResponse{
			Message: "CRM API Server",
			Version: Version,
			Endpoints: map[string]string{
				"health":    "/health",
				"auth":      "/api/auth",
				"customers": "/api/customers",
			},
		})
	}
}

// HealthHandler 存活檢查，不碰資料庫
// @Summary     Liveness check
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Router      /health [get]
func HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.HealthResponse{
			Status:    "OK",
			Timestamp: timeNow().UTC().Format("2006-01-02T15:04:05.000Z"),
			Service:   ServiceName,
			Version:   Version,
		})
	}
}

// ReadyHandler 檢查資料庫與 (若有設定) Redis 是否可連線
// @Summary     Readiness check
// @Description 資料庫或 Redis 無回應時回傳 503
// @Tags        health
// @Produce     json
// @Success     200 {object} api.ReadyResponse
// @Failure     503 {object} api.ReadyResponse
// @Router      /ready [get]
func ReadyHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		services := map[string]string{"database": "up"}
		if err := db.Ping(ctx); err != nil {
			services["database"] = "down"
			status = http.StatusServiceUnavailable
		}
		if rdb != nil {
			services["redis"] = "up"
			if err := rdb.Ping(ctx).Err(); err != nil {
				services["redis"] = "down"
				status = http.StatusServiceUnavailable
			}
		}

		resp := api.ReadyResponse{Status: "ready", Services: services}
		if status != http.StatusOK {
			resp.Status = "unavailable"
		}
		return c.JSON(status, resp)
	}
}
