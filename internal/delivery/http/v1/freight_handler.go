package v1

import (
	"errors"
	"freightzone-backend/internal/domain"
	"freightzone-backend/internal/usecase"
	"freightzone-backend/pkg/logger"
	"freightzone-backend/pkg/utils"
	"net/http"
)

// FreightHandler serves the public storefront freight endpoints.
type FreightHandler struct {
	freightUC     *usecase.FreightUsecase
	maxOrderTotal float64
}

func NewFreightHandler(uc *usecase.FreightUsecase, maxOrderTotal float64) *FreightHandler {
	return &FreightHandler{freightUC: uc, maxOrderTotal: maxOrderTotal}
}

type calculateReq struct {
	domain.Address
	OrderTotal float64 `json:"orderTotal"`
}

type failureResponse struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	SupportedCountries []string `json:"supportedCountries"`
}

// POST /api/v1/freight/calculate-from-address
func (h *FreightHandler) CalculateFromAddress(w http.ResponseWriter, r *http.Request) {
	var req calculateReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.OrderTotal < 0 {
		utils.WriteError(w, http.StatusBadRequest, "Order total must not be negative")
		return
	}
	if h.maxOrderTotal > 0 && req.OrderTotal > h.maxOrderTotal {
		utils.WriteError(w, http.StatusBadRequest, "Order total exceeds maximum limit")
		return
	}

	calc, err := h.freightUC.CalculateFromAddress(r.Context(), req.Address, req.OrderTotal)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Freight calculation failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to calculate freight")
		return
	}

	if !calc.Success {
		utils.WriteJSON(w, http.StatusBadRequest, failureResponse{
			Success:            false,
			Message:            calc.Message,
			SupportedCountries: calc.SupportedCountries,
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, calc)
}

// POST /api/v1/freight/validate-address
func (h *FreightHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if err := utils.DecodeJSON(w, r, &addr); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.freightUC.ValidateAddress(addr))
}

// GET /api/v1/freight/zones-info
func (h *FreightHandler) GetZonesInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.freightUC.ZonesInfo(r.Context())
	if err != nil {
		h.configError(w, r, err)
		return
	}
	writePublicData(w, info)
}

// GET /api/v1/freight/supported-countries
func (h *FreightHandler) GetSupportedCountries(w http.ResponseWriter, r *http.Request) {
	writePublicData(w, h.freightUC.SupportedCountries())
}

// GET /api/v1/freight/zones
func (h *FreightHandler) GetZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.freightUC.PublicZones(r.Context())
	if err != nil {
		h.configError(w, r, err)
		return
	}
	writePublicData(w, zones)
}

// GET /api/v1/freight/config
func (h *FreightHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.freightUC.PublicConfig(r.Context())
	if err != nil {
		h.configError(w, r, err)
		return
	}
	writePublicData(w, cfg)
}

func (h *FreightHandler) configError(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to load freight config")
	utils.WriteError(w, http.StatusInternalServerError, "Failed to load freight configuration")
}

type dataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// writePublicData responds with a cacheable {success, data} envelope.
func writePublicData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Cache-Control", "public, max-age=60")
	utils.WriteJSON(w, http.StatusOK, dataResponse{Success: true, Data: data})
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	utils.WriteJSON(w, status, dataResponse{Success: true, Data: data})
}

// isClientError reports whether err is a rejected admin input.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidFreightConfig) || errors.Is(err, domain.ErrInvalidLocalZoneCity)
}
