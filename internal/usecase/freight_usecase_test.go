package usecase

import (
	"context"
	"errors"
	"freightzone-backend/config"
	"freightzone-backend/internal/domain"
	"freightzone-backend/internal/freight"
	memcache "freightzone-backend/internal/infrastructure/cache"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFreightRepo struct {
	mu        sync.Mutex
	freight   *domain.FreightConfig
	localZone *domain.LocalZoneConfig
	reads     int
	saveErr   error
}

func (r *fakeFreightRepo) GetFreightConfig(ctx context.Context) (*domain.FreightConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.freight == nil {
		return nil, domain.ErrConfigNotFound
	}
	cp := *r.freight
	return &cp, nil
}

func (r *fakeFreightRepo) SaveFreightConfig(ctx context.Context, cfg *domain.FreightConfig) (*domain.FreightConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	cp := *cfg
	cp.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.freight = &cp
	out := cp
	return &out, nil
}

func (r *fakeFreightRepo) GetLocalZoneConfig(ctx context.Context) (*domain.LocalZoneConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.localZone == nil {
		return nil, domain.ErrConfigNotFound
	}
	cp := r.localZone.Clone()
	return &cp, nil
}

func (r *fakeFreightRepo) SaveLocalZoneConfig(ctx context.Context, cfg *domain.LocalZoneConfig) (*domain.LocalZoneConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	cp := cfg.Clone()
	r.localZone = &cp
	out := cp.Clone()
	return &out, nil
}

type fakePublisher struct {
	key  string
	data []byte
	err  error
}

func (p *fakePublisher) UploadJSON(ctx context.Context, key string, data []byte) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.key = key
	p.data = data
	return "https://cdn.example.com/" + key, nil
}

func newTestUsecase(repo *fakeFreightRepo, pub domain.RateCardPublisher) *FreightUsecase {
	cfg := &config.Config{
		CacheFreightConfigTTL: time.Minute,
		RateCardKey:           "freight/zones-info.json",
	}
	return NewFreightUsecase(repo, memcache.NewMemoryCache(time.Minute, time.Minute), pub, cfg)
}

func ptr[T any](v T) *T { return &v }

func TestSnapshot_DefaultsWhenNothingSaved(t *testing.T) {
	uc := newTestUsecase(&fakeFreightRepo{}, nil)

	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultFreightConfig(), snap.Freight)
	assert.Equal(t, "Tauranga", snap.LocalZone.City)
	assert.Equal(t, "Bay of Plenty", snap.LocalZone.Region)
	assert.Equal(t, []string{"311"}, snap.LocalZone.PostalCodePrefixes)
}

func TestSnapshot_IsCached(t *testing.T) {
	repo := &fakeFreightRepo{freight: &domain.FreightConfig{LocalCost: 30}}
	uc := newTestUsecase(repo, nil)

	_, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	_, err = uc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.reads)
}

func TestCalculateFromAddress_Wellington(t *testing.T) {
	repo := &fakeFreightRepo{freight: &domain.FreightConfig{
		NorthIslandCost:      45,
		ThresholdNational:    300,
		IsFreeFreightEnabled: true,
	}}
	uc := newTestUsecase(repo, nil)

	calc, err := uc.CalculateFromAddress(context.Background(), domain.Address{
		Country: "New Zealand",
		City:    "Wellington",
		State:   "Wellington",
	}, 50)
	require.NoError(t, err)

	assert.True(t, calc.Success)
	assert.Equal(t, domain.ZoneNorthIsland, calc.Zone)
	assert.Equal(t, 45.0, calc.FreightCost)
	assert.False(t, calc.IsFreeFreight)
	require.NotNil(t, calc.AmountForFreeFreight)
	assert.Equal(t, 250.0, *calc.AmountForFreeFreight)
}

func TestCalculateFromAddress_UnsupportedCountry(t *testing.T) {
	uc := newTestUsecase(&fakeFreightRepo{}, nil)

	calc, err := uc.CalculateFromAddress(context.Background(), domain.Address{Country: "Atlantis"}, 10)
	require.NoError(t, err)

	assert.False(t, calc.Success)
	assert.NotEmpty(t, calc.Message)
	assert.Equal(t, freight.SupportedCountries, calc.SupportedCountries)
}

func TestUpdateFreightConfig(t *testing.T) {
	repo := &fakeFreightRepo{freight: &domain.FreightConfig{LocalCost: 30, NorthIslandCost: 45}}
	pub := &fakePublisher{}
	uc := newTestUsecase(repo, pub)
	ctx := context.Background()

	// warm the cache so the update has something to invalidate
	_, err := uc.Snapshot(ctx)
	require.NoError(t, err)

	saved, err := uc.UpdateFreightConfig(ctx, "admin-1", FreightConfigUpdate{
		LocalCost:            ptr(25.555),
		IsFreeFreightEnabled: ptr(true),
		ThresholdLocal:       ptr(200.0),
	})
	require.NoError(t, err)

	assert.Equal(t, 25.56, saved.LocalCost)
	assert.Equal(t, 45.0, saved.NorthIslandCost, "omitted fields keep their value")
	assert.True(t, saved.IsFreeFreightEnabled)
	assert.Equal(t, "admin-1", saved.UpdatedBy)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := uc.GetFreightConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25.56, got.LocalCost, "cache is invalidated on update")

	assert.Equal(t, "freight/zones-info.json", pub.key)
	var info freight.ZonesInfo
	require.NoError(t, json.Unmarshal(pub.data, &info))
	assert.True(t, info.IsFreeFreightEnabled)
	assert.Equal(t, 200.0, info.Thresholds.Local)
}

func TestUpdateFreightConfig_RejectsNegative(t *testing.T) {
	repo := &fakeFreightRepo{freight: &domain.FreightConfig{LocalCost: 30}}
	uc := newTestUsecase(repo, nil)

	_, err := uc.UpdateFreightConfig(context.Background(), "admin-1", FreightConfigUpdate{LocalCost: ptr(-1.0)})
	assert.ErrorIs(t, err, domain.ErrInvalidFreightConfig)
	assert.Equal(t, 30.0, repo.freight.LocalCost)
}

func TestUpdateFreightConfig_PublishFailureIsNotFatal(t *testing.T) {
	repo := &fakeFreightRepo{}
	uc := newTestUsecase(repo, &fakePublisher{err: errors.New("r2 down")})

	saved, err := uc.UpdateFreightConfig(context.Background(), "admin-1", FreightConfigUpdate{AsiaCost: ptr(95.0)})
	require.NoError(t, err)
	assert.Equal(t, 95.0, saved.AsiaCost)
}

func TestUpdateFreightConfig_SaveError(t *testing.T) {
	boom := errors.New("db down")
	uc := newTestUsecase(&fakeFreightRepo{saveErr: boom}, nil)

	_, err := uc.UpdateFreightConfig(context.Background(), "admin-1", FreightConfigUpdate{AsiaCost: ptr(95.0)})
	assert.ErrorIs(t, err, boom)
}

func TestUpdateLocalZone(t *testing.T) {
	repo := &fakeFreightRepo{}
	uc := newTestUsecase(repo, nil)
	ctx := context.Background()

	lz, err := uc.UpdateLocalZone(ctx, "admin-1", LocalZoneUpdate{City: "wellington"})
	require.NoError(t, err)

	assert.Equal(t, "Wellington", lz.City)
	assert.Equal(t, "Wellington", lz.Region)
	assert.Equal(t, []string{"601", "602", "603"}, lz.PostalCodePrefixes)
	assert.Empty(t, lz.Suburbs)
	assert.Equal(t, "admin-1", lz.UpdatedBy)

	calc, err := uc.CalculateFromAddress(ctx, domain.Address{Country: "NZ", PostalCode: "6011"}, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneLocal, calc.Zone)
	assert.Equal(t, "Local (Wellington)", calc.ZoneDisplayName)
}

func TestUpdateLocalZone_RejectsSouthIsland(t *testing.T) {
	existing := domain.DefaultLocalZoneConfig()
	repo := &fakeFreightRepo{localZone: &existing}
	uc := newTestUsecase(repo, nil)

	_, err := uc.UpdateLocalZone(context.Background(), "admin-1", LocalZoneUpdate{City: "Christchurch"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLocalZoneCity)

	var cityErr *freight.InvalidCityError
	require.ErrorAs(t, err, &cityErr)
	assert.Equal(t, "Christchurch", cityErr.City)

	got, err := uc.GetLocalZone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tauranga", got.City, "rejected update leaves config unchanged")
}

func TestUpdateLocalZone_CustomLists(t *testing.T) {
	uc := newTestUsecase(&fakeFreightRepo{}, nil)

	lz, err := uc.UpdateLocalZone(context.Background(), "admin-1", LocalZoneUpdate{
		City:               "Tauranga",
		PostalCodePrefixes: []string{" 311 ", "311", "314"},
		Suburbs:            []string{"Mount Maunganui", "", "Papamoa"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"311", "314"}, lz.PostalCodePrefixes)
	assert.Equal(t, []string{"Mount Maunganui", "Papamoa"}, lz.Suburbs)
}

func TestPublicViews(t *testing.T) {
	repo := &fakeFreightRepo{freight: &domain.FreightConfig{LocalCost: 30, UpdatedBy: "admin-1"}}
	uc := newTestUsecase(repo, nil)
	ctx := context.Background()

	zones, err := uc.PublicZones(ctx)
	require.NoError(t, err)
	require.Len(t, zones, len(domain.Zones))
	assert.Equal(t, domain.ZoneLocal, zones[0].Zone)
	assert.Equal(t, 30.0, zones[0].Cost)

	pub, err := uc.PublicConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30.0, pub.LocalCost)

	assert.Equal(t, freight.SupportedCountries, uc.SupportedCountries())
	assert.NotEmpty(t, uc.AvailableCities())
}
