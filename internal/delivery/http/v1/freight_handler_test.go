package v1

import (
	"bytes"
	"context"
	"errors"
	"freightzone-backend/config"
	"freightzone-backend/internal/domain"
	memcache "freightzone-backend/internal/infrastructure/cache"
	"freightzone-backend/internal/usecase"
	"freightzone-backend/pkg/utils"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-32-chars"

type memoryFreightRepo struct {
	mu        sync.Mutex
	freight   *domain.FreightConfig
	localZone *domain.LocalZoneConfig
}

func (r *memoryFreightRepo) GetFreightConfig(ctx context.Context) (*domain.FreightConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.freight == nil {
		return nil, domain.ErrConfigNotFound
	}
	cp := *r.freight
	return &cp, nil
}

func (r *memoryFreightRepo) SaveFreightConfig(ctx context.Context, cfg *domain.FreightConfig) (*domain.FreightConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cfg
	cp.UpdatedAt = time.Now().UTC()
	r.freight = &cp
	out := cp
	return &out, nil
}

func (r *memoryFreightRepo) GetLocalZoneConfig(ctx context.Context) (*domain.LocalZoneConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.localZone == nil {
		return nil, domain.ErrConfigNotFound
	}
	cp := r.localZone.Clone()
	return &cp, nil
}

func (r *memoryFreightRepo) SaveLocalZoneConfig(ctx context.Context, cfg *domain.LocalZoneConfig) (*domain.LocalZoneConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := cfg.Clone()
	cp.UpdatedAt = time.Now().UTC()
	r.localZone = &cp
	out := cp.Clone()
	return &out, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func newTestServer(t *testing.T, repo *memoryFreightRepo) http.Handler {
	t.Helper()
	utils.SetSecret(testSecret)

	cfg := &config.Config{CacheFreightConfigTTL: time.Minute, MaxOrderTotal: 10000}
	uc := usecase.NewFreightUsecase(repo, memcache.NewMemoryCache(time.Minute, time.Minute), nil, cfg)

	mux := http.NewServeMux()
	RegisterFreightRoutes(mux, NewFreightHandler(uc, cfg.MaxOrderTotal), NewAdminFreightHandler(uc))
	return mux
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWT("admin-1", "admin@example.com", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func TestCalculateFromAddress_Endpoint(t *testing.T) {
	repo := &memoryFreightRepo{freight: &domain.FreightConfig{
		LocalCost:            30,
		NorthIslandCost:      45,
		ThresholdLocal:       200,
		ThresholdNational:    300,
		IsFreeFreightEnabled: true,
	}}
	h := newTestServer(t, repo)

	t.Run("wellington", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/freight/calculate-from-address", map[string]interface{}{
			"country":    "New Zealand",
			"city":       "Wellington",
			"state":      "Wellington",
			"orderTotal": 50,
		}, "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "north_island", body["zone"])
		assert.Equal(t, "national", body["zoneCategory"])
		assert.Equal(t, 45.0, body["freightCost"])
		assert.Equal(t, false, body["isFreeFreight"])
		assert.Equal(t, 250.0, body["amountForFreeFreight"])
		assert.Equal(t, 50.0, body["orderTotal"])
	})

	t.Run("local by postal prefix at threshold", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/freight/calculate-from-address", map[string]interface{}{
			"country":    "NZ",
			"postalCode": "3110",
			"orderTotal": 200,
		}, "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "local", body["zone"])
		assert.Equal(t, "Local (Tauranga)", body["zoneDisplayName"])
		assert.Equal(t, 0.0, body["freightCost"])
		assert.Equal(t, true, body["isFreeFreight"])
	})

	t.Run("unsupported country", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/freight/calculate-from-address", map[string]interface{}{
			"country":    "Atlantis",
			"orderTotal": 10,
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["message"])
		assert.Len(t, body["supportedCountries"], 8)
		assert.NotContains(t, body, "zone")
	})

	t.Run("negative total", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/freight/calculate-from-address", map[string]interface{}{
			"country":    "NZ",
			"orderTotal": -1,
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("total above limit", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/freight/calculate-from-address", map[string]interface{}{
			"country":    "NZ",
			"orderTotal": 20000,
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/freight/calculate-from-address", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestValidateAddress_Endpoint(t *testing.T) {
	h := newTestServer(t, &memoryFreightRepo{})

	rec := doJSON(t, h, http.MethodPost, "/api/v1/freight/validate-address", map[string]interface{}{
		"country": "New Zealand",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["isValid"])
	assert.NotEmpty(t, body["errors"])
	assert.Len(t, body["supportedCountries"], 8)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/freight/validate-address", map[string]interface{}{
		"country": "New Zealand",
		"city":    "Auckland",
	}, "")
	body = decodeBody(t, rec)
	assert.Equal(t, true, body["isValid"])
}

func TestPublicReadEndpoints(t *testing.T) {
	h := newTestServer(t, &memoryFreightRepo{freight: &domain.FreightConfig{AsiaCost: 95, UpdatedBy: "admin-1"}})

	for _, path := range []string{
		"/api/v1/freight/zones-info",
		"/api/v1/freight/supported-countries",
		"/api/v1/freight/zones",
		"/api/v1/freight/config",
	} {
		t.Run(path, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodGet, path, nil, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

			body := decodeBody(t, rec)
			assert.Equal(t, true, body["success"])
			assert.NotNil(t, body["data"])
		})
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/freight/config", nil, "")
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 95.0, data["asiaCost"])
	assert.NotContains(t, data, "updatedBy", "public config hides audit fields")
}

func TestAdminEndpoints_RequireAdmin(t *testing.T) {
	h := newTestServer(t, &memoryFreightRepo{})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/admin/freight", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	customer, err := utils.GenerateJWT("cust-1", "c@example.com", domain.RoleCustomer, time.Hour)
	require.NoError(t, err)
	rec = doJSON(t, h, http.MethodPut, "/api/v1/admin/freight", map[string]interface{}{"localCost": 1}, customer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminUpdateFreightConfig(t *testing.T) {
	repo := &memoryFreightRepo{}
	h := newTestServer(t, repo)
	token := adminToken(t)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/admin/freight", map[string]interface{}{
		"localCost":            30,
		"isFreeFreightEnabled": true,
		"thresholdLocal":       200,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 30.0, data["localCost"])
	assert.Equal(t, "admin-1", data["updatedBy"])

	rec = doJSON(t, h, http.MethodPut, "/api/v1/admin/freight", map[string]interface{}{"localCost": -5}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 30.0, repo.freight.LocalCost)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/admin/freight", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, true, data["isFreeFreightEnabled"])
}

func TestAdminUpdateLocalZone(t *testing.T) {
	h := newTestServer(t, &memoryFreightRepo{})
	token := adminToken(t)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/admin/freight/local-zone", map[string]interface{}{"city": "Christchurch"}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["availableCities"], "Tauranga")

	rec = doJSON(t, h, http.MethodGet, "/api/v1/admin/freight/local-zone", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Tauranga", data["city"])

	rec = doJSON(t, h, http.MethodPut, "/api/v1/admin/freight/local-zone", map[string]interface{}{
		"city":    "Hamilton",
		"suburbs": []string{"Hillcrest"},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Hamilton", data["city"])
	assert.Equal(t, "Waikato", data["region"])

	rec = doJSON(t, h, http.MethodPost, "/api/v1/freight/calculate-from-address", map[string]interface{}{
		"country": "New Zealand",
		"city":    "Hillcrest",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "local", decodeBody(t, rec)["zone"])

	rec = doJSON(t, h, http.MethodGet, "/api/v1/admin/freight/available-cities", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["data"])
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthHandler(stubPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	HealthHandler(stubPinger{err: errors.New("down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
