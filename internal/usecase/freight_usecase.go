package usecase

import (
	"context"
	"errors"
	"fmt"
	"freightzone-backend/config"
	"freightzone-backend/internal/domain"
	"freightzone-backend/internal/freight"
	"freightzone-backend/pkg/cache"
	"freightzone-backend/pkg/logger"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// FreightConfigUpdate is a partial admin update. Nil fields keep their
// current value.
type FreightConfigUpdate struct {
	LocalCost        *float64 `json:"localCost" validate:"omitempty,gte=0"`
	NorthIslandCost  *float64 `json:"northIslandCost" validate:"omitempty,gte=0"`
	SouthIslandCost  *float64 `json:"southIslandCost" validate:"omitempty,gte=0"`
	NorthAmericaCost *float64 `json:"northAmericaCost" validate:"omitempty,gte=0"`
	AsiaCost         *float64 `json:"asiaCost" validate:"omitempty,gte=0"`
	EuropeCost       *float64 `json:"europeCost" validate:"omitempty,gte=0"`
	AfricaCost       *float64 `json:"africaCost" validate:"omitempty,gte=0"`
	LatinAmericaCost *float64 `json:"latinAmericaCost" validate:"omitempty,gte=0"`

	IsFreeFreightEnabled   *bool    `json:"isFreeFreightEnabled"`
	ThresholdLocal         *float64 `json:"thresholdLocal" validate:"omitempty,gte=0"`
	ThresholdNational      *float64 `json:"thresholdNational" validate:"omitempty,gte=0"`
	ThresholdInternational *float64 `json:"thresholdInternational" validate:"omitempty,gte=0"`
}

// LocalZoneUpdate is an admin request to move the local zone. Omitted lists
// fall back to the city's directory defaults.
type LocalZoneUpdate struct {
	City               string   `json:"city" validate:"max=100"`
	PostalCodePrefixes []string `json:"postalCodePrefixes" validate:"omitempty,max=50,dive,max=10"`
	Suburbs            []string `json:"suburbs" validate:"omitempty,max=200,dive,max=100"`
}

type FreightUsecase struct {
	repo        domain.FreightConfigRepository
	cache       cache.CacheService
	publisher   domain.RateCardPublisher
	validate    *validator.Validate
	cacheTTL    time.Duration
	rateCardKey string
}

// NewFreightUsecase wires the freight use case. publisher may be nil, in which
// case the rate card is not published.
func NewFreightUsecase(repo domain.FreightConfigRepository, cache cache.CacheService, publisher domain.RateCardPublisher, cfg *config.Config) *FreightUsecase {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &FreightUsecase{
		repo:        repo,
		cache:       cache,
		publisher:   publisher,
		validate:    validate,
		cacheTTL:    cfg.CacheFreightConfigTTL,
		rateCardKey: cfg.RateCardKey,
	}
}

// Snapshot reads both configs once. Callers pass the result by value through a
// whole calculation so concurrent admin edits never tear it.
func (u *FreightUsecase) Snapshot(ctx context.Context) (domain.FreightSnapshot, error) {
	fc, err := u.freightConfig(ctx)
	if err != nil {
		return domain.FreightSnapshot{}, err
	}
	lz, err := u.localZone(ctx)
	if err != nil {
		return domain.FreightSnapshot{}, err
	}
	return domain.FreightSnapshot{Freight: fc, LocalZone: lz}, nil
}

func (u *FreightUsecase) CalculateFromAddress(ctx context.Context, addr domain.Address, orderTotal float64) (freight.Calculation, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return freight.Calculation{}, err
	}

	calc := freight.CalculateFromAddress(addr, orderTotal, snap.Freight, snap.LocalZone)
	if !calc.Success {
		freightUnsupportedCountryTotal.Inc()
		logger.WithContext(ctx).Debug().Str("country", addr.Country).Msg("Unsupported shipping country")
		return calc, nil
	}

	freightCalculationsTotal.WithLabelValues(string(calc.Zone)).Inc()
	return calc, nil
}

func (u *FreightUsecase) ValidateAddress(addr domain.Address) freight.AddressValidation {
	return freight.ValidateAddress(addr)
}

func (u *FreightUsecase) ZonesInfo(ctx context.Context) (freight.ZonesInfo, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return freight.ZonesInfo{}, err
	}
	return freight.BuildZonesInfo(snap), nil
}

// PublicZones is the storefront cost table.
func (u *FreightUsecase) PublicZones(ctx context.Context) ([]freight.ZoneCost, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return freight.ZoneCosts(snap.Freight, snap.LocalZone.City), nil
}

func (u *FreightUsecase) PublicConfig(ctx context.Context) (domain.PublicFreightConfig, error) {
	fc, err := u.freightConfig(ctx)
	if err != nil {
		return domain.PublicFreightConfig{}, err
	}
	return fc.Public(), nil
}

func (u *FreightUsecase) SupportedCountries() []string {
	return freight.SupportedCountryList()
}

func (u *FreightUsecase) GetFreightConfig(ctx context.Context) (domain.FreightConfig, error) {
	return u.freightConfig(ctx)
}

func (u *FreightUsecase) GetLocalZone(ctx context.Context) (domain.LocalZoneConfig, error) {
	return u.localZone(ctx)
}

func (u *FreightUsecase) AvailableCities() []freight.NorthIslandCity {
	return freight.AvailableCities()
}

// UpdateFreightConfig applies a partial update on top of the stored config.
// Amounts are rounded to cents; negative amounts are rejected.
func (u *FreightUsecase) UpdateFreightConfig(ctx context.Context, adminID string, in FreightConfigUpdate) (domain.FreightConfig, error) {
	if err := u.validate.Struct(in); err != nil {
		return domain.FreightConfig{}, fmt.Errorf("%w: %s", domain.ErrInvalidFreightConfig, validationMessage(err))
	}

	current, err := u.loadFreightConfig(ctx)
	if err != nil {
		return domain.FreightConfig{}, err
	}

	changed := applyFreightUpdate(&current, in)
	current.UpdatedBy = adminID

	saved, err := u.repo.SaveFreightConfig(ctx, &current)
	if err != nil {
		return domain.FreightConfig{}, err
	}

	u.invalidate()
	freightConfigUpdatesTotal.WithLabelValues("freight").Inc()
	logger.ConfigChange(ctx, "freight", adminID, changed)
	u.publishRateCard(ctx)

	return *saved, nil
}

// UpdateLocalZone moves the local zone to a North Island city. A rejected
// city leaves the stored config untouched.
func (u *FreightUsecase) UpdateLocalZone(ctx context.Context, adminID string, in LocalZoneUpdate) (domain.LocalZoneConfig, error) {
	if err := u.validate.Struct(in); err != nil {
		return domain.LocalZoneConfig{}, fmt.Errorf("%w: %s", domain.ErrInvalidFreightConfig, validationMessage(err))
	}

	lz, err := freight.BuildLocalZone(freight.LocalZoneCandidate{
		City:               in.City,
		PostalCodePrefixes: in.PostalCodePrefixes,
		Suburbs:            in.Suburbs,
	})
	if err != nil {
		logger.WithContext(ctx).Warn().Str("city", in.City).Str("admin_id", adminID).Msg("Rejected local zone city")
		return domain.LocalZoneConfig{}, err
	}
	lz.UpdatedBy = adminID

	saved, err := u.repo.SaveLocalZoneConfig(ctx, &lz)
	if err != nil {
		return domain.LocalZoneConfig{}, err
	}

	u.invalidate()
	freightConfigUpdatesTotal.WithLabelValues("local_zone").Inc()
	logger.ConfigChange(ctx, "local_zone", adminID, map[string]interface{}{
		"city":                 saved.City,
		"region":               saved.Region,
		"postal_code_prefixes": saved.PostalCodePrefixes,
		"suburbs":              len(saved.Suburbs),
	})
	u.publishRateCard(ctx)

	return saved.Clone(), nil
}

func (u *FreightUsecase) freightConfig(ctx context.Context) (domain.FreightConfig, error) {
	if val, found := u.cache.Get(cache.KeyFreightConfig); found {
		if fc, ok := val.(domain.FreightConfig); ok {
			return fc, nil
		}
	}

	fc, err := u.loadFreightConfig(ctx)
	if err != nil {
		return domain.FreightConfig{}, err
	}
	u.cache.Set(cache.KeyFreightConfig, fc, u.cacheTTL)
	return fc, nil
}

func (u *FreightUsecase) loadFreightConfig(ctx context.Context) (domain.FreightConfig, error) {
	fc, err := u.repo.GetFreightConfig(ctx)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return domain.DefaultFreightConfig(), nil
	}
	if err != nil {
		return domain.FreightConfig{}, err
	}
	return *fc, nil
}

func (u *FreightUsecase) localZone(ctx context.Context) (domain.LocalZoneConfig, error) {
	if val, found := u.cache.Get(cache.KeyLocalZoneConfig); found {
		if lz, ok := val.(domain.LocalZoneConfig); ok {
			return lz.Clone(), nil
		}
	}

	var lz domain.LocalZoneConfig
	stored, err := u.repo.GetLocalZoneConfig(ctx)
	switch {
	case errors.Is(err, domain.ErrConfigNotFound):
		lz = domain.DefaultLocalZoneConfig()
	case err != nil:
		return domain.LocalZoneConfig{}, err
	default:
		lz = stored.Clone()
	}

	u.cache.Set(cache.KeyLocalZoneConfig, lz.Clone(), u.cacheTTL)
	return lz, nil
}

func (u *FreightUsecase) invalidate() {
	u.cache.DeletePrefix(cache.PrefixFreight)
}

// publishRateCard pushes the current zones info to object storage. Failures
// are logged; the admin update has already been saved.
func (u *FreightUsecase) publishRateCard(ctx context.Context) {
	if u.publisher == nil || u.rateCardKey == "" {
		return
	}

	info, err := u.ZonesInfo(ctx)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Failed to build rate card")
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Failed to encode rate card")
		return
	}

	url, err := u.publisher.UploadJSON(ctx, u.rateCardKey, data)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", u.rateCardKey).Msg("Failed to publish rate card")
		return
	}
	logger.WithContext(ctx).Info().Str("url", url).Msg("Rate card published")
}

func applyFreightUpdate(cfg *domain.FreightConfig, in FreightConfigUpdate) map[string]interface{} {
	changed := map[string]interface{}{}
	setAmount := func(name string, dst *float64, v *float64) {
		if v == nil {
			return
		}
		*dst = freight.RoundMoney(*v)
		changed[name] = *dst
	}

	setAmount("local_cost", &cfg.LocalCost, in.LocalCost)
	setAmount("north_island_cost", &cfg.NorthIslandCost, in.NorthIslandCost)
	setAmount("south_island_cost", &cfg.SouthIslandCost, in.SouthIslandCost)
	setAmount("north_america_cost", &cfg.NorthAmericaCost, in.NorthAmericaCost)
	setAmount("asia_cost", &cfg.AsiaCost, in.AsiaCost)
	setAmount("europe_cost", &cfg.EuropeCost, in.EuropeCost)
	setAmount("africa_cost", &cfg.AfricaCost, in.AfricaCost)
	setAmount("latin_america_cost", &cfg.LatinAmericaCost, in.LatinAmericaCost)
	setAmount("threshold_local", &cfg.ThresholdLocal, in.ThresholdLocal)
	setAmount("threshold_national", &cfg.ThresholdNational, in.ThresholdNational)
	setAmount("threshold_international", &cfg.ThresholdInternational, in.ThresholdInternational)

	if in.IsFreeFreightEnabled != nil {
		cfg.IsFreeFreightEnabled = *in.IsFreeFreightEnabled
		changed["is_free_freight_enabled"] = *in.IsFreeFreightEnabled
	}
	return changed
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "gte":
		return fe.Field() + " must not be negative"
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " is too long"
	}
	return fe.Field() + " is invalid"
}
