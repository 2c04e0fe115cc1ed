package v1

import (
	"context"
	"freightzone-backend/internal/delivery/http/middleware"
	"net/http"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterFreightRoutes mounts the public and admin freight endpoints.
func RegisterFreightRoutes(mux *http.ServeMux, freightHandler *FreightHandler, adminHandler *AdminFreightHandler) {
	// Freight (Public)
	mux.HandleFunc("POST /api/v1/freight/calculate-from-address", freightHandler.CalculateFromAddress)
	mux.HandleFunc("POST /api/v1/freight/validate-address", freightHandler.ValidateAddress)
	mux.HandleFunc("GET /api/v1/freight/zones-info", freightHandler.GetZonesInfo)
	mux.HandleFunc("GET /api/v1/freight/supported-countries", freightHandler.GetSupportedCountries)
	mux.HandleFunc("GET /api/v1/freight/zones", freightHandler.GetZones)
	mux.HandleFunc("GET /api/v1/freight/config", freightHandler.GetConfig)

	// Admin (Protected)
	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	mux.Handle("GET /api/v1/admin/freight", adminMiddleware(adminHandler.GetFreightConfig))
	mux.Handle("PUT /api/v1/admin/freight", adminMiddleware(adminHandler.UpdateFreightConfig))
	mux.Handle("GET /api/v1/admin/freight/local-zone", adminMiddleware(adminHandler.GetLocalZone))
	mux.Handle("PUT /api/v1/admin/freight/local-zone", adminMiddleware(adminHandler.UpdateLocalZone))
	mux.Handle("GET /api/v1/admin/freight/available-cities", adminMiddleware(adminHandler.GetAvailableCities))
}

// HealthHandler reports ok while the database answers a ping.
func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "degraded", "db": "unreachable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
}
