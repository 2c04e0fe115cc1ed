package v1

import (
	"errors"
	"freightzone-backend/internal/delivery/http/middleware"
	"freightzone-backend/internal/freight"
	"freightzone-backend/internal/usecase"
	"freightzone-backend/pkg/logger"
	"freightzone-backend/pkg/utils"
	"net/http"
)

// AdminFreightHandler manages the freight and local zone configuration.
// Routes are mounted behind AuthMiddleware and AdminMiddleware.
type AdminFreightHandler struct {
	freightUC *usecase.FreightUsecase
}

func NewAdminFreightHandler(uc *usecase.FreightUsecase) *AdminFreightHandler {
	return &AdminFreightHandler{freightUC: uc}
}

// GET /api/v1/admin/freight
func (h *AdminFreightHandler) GetFreightConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.freightUC.GetFreightConfig(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to load freight config")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load freight configuration")
		return
	}
	writeData(w, http.StatusOK, cfg)
}

// PUT /api/v1/admin/freight
func (h *AdminFreightHandler) UpdateFreightConfig(w http.ResponseWriter, r *http.Request) {
	var req usecase.FreightConfigUpdate
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.freightUC.UpdateFreightConfig(r.Context(), adminID(r), req)
	if err != nil {
		h.updateError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// GET /api/v1/admin/freight/local-zone
func (h *AdminFreightHandler) GetLocalZone(w http.ResponseWriter, r *http.Request) {
	lz, err := h.freightUC.GetLocalZone(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to load local zone config")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load local zone configuration")
		return
	}
	writeData(w, http.StatusOK, lz)
}

// PUT /api/v1/admin/freight/local-zone
func (h *AdminFreightHandler) UpdateLocalZone(w http.ResponseWriter, r *http.Request) {
	var req usecase.LocalZoneUpdate
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.freightUC.UpdateLocalZone(r.Context(), adminID(r), req)
	if err != nil {
		var cityErr *freight.InvalidCityError
		if errors.As(err, &cityErr) {
			utils.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success":         false,
				"message":         cityErr.Error(),
				"availableCities": cityNames(h.freightUC.AvailableCities()),
			})
			return
		}
		h.updateError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// GET /api/v1/admin/freight/available-cities
func (h *AdminFreightHandler) GetAvailableCities(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.freightUC.AvailableCities())
}

func (h *AdminFreightHandler) updateError(w http.ResponseWriter, r *http.Request, err error) {
	if isClientError(err) {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Freight config update failed")
	utils.WriteError(w, http.StatusInternalServerError, "Failed to update freight configuration")
}

func adminID(r *http.Request) string {
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		return user.ID
	}
	return ""
}

func cityNames(cities []freight.NorthIslandCity) []string {
	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = c.Name
	}
	return names
}
