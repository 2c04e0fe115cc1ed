package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"freightzone-backend/internal/domain"
	"freightzone-backend/pkg/logger"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	getFreightConfigSQL = `SELECT local_cost, north_island_cost, south_island_cost, north_america_cost,
	asia_cost, europe_cost, africa_cost, latin_america_cost,
	is_free_freight_enabled, threshold_local, threshold_national, threshold_international,
	updated_by, updated_at
FROM freight_config WHERE id = 1`

	upsertFreightConfigSQL = `INSERT INTO freight_config (
	id, local_cost, north_island_cost, south_island_cost, north_america_cost,
	asia_cost, europe_cost, africa_cost, latin_america_cost,
	is_free_freight_enabled, threshold_local, threshold_national, threshold_international,
	updated_by, updated_at
) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
ON CONFLICT (id) DO UPDATE SET
	local_cost = EXCLUDED.local_cost,
	north_island_cost = EXCLUDED.north_island_cost,
	south_island_cost = EXCLUDED.south_island_cost,
	north_america_cost = EXCLUDED.north_america_cost,
	asia_cost = EXCLUDED.asia_cost,
	europe_cost = EXCLUDED.europe_cost,
	africa_cost = EXCLUDED.africa_cost,
	latin_america_cost = EXCLUDED.latin_america_cost,
	is_free_freight_enabled = EXCLUDED.is_free_freight_enabled,
	threshold_local = EXCLUDED.threshold_local,
	threshold_national = EXCLUDED.threshold_national,
	threshold_international = EXCLUDED.threshold_international,
	updated_by = EXCLUDED.updated_by,
	updated_at = now()
RETURNING local_cost, north_island_cost, south_island_cost, north_america_cost,
	asia_cost, europe_cost, africa_cost, latin_america_cost,
	is_free_freight_enabled, threshold_local, threshold_national, threshold_international,
	updated_by, updated_at`

	getLocalZoneConfigSQL = `SELECT city, region, postal_code_prefixes, suburbs, updated_by, updated_at
FROM local_zone_config WHERE id = 1`

	upsertLocalZoneConfigSQL = `INSERT INTO local_zone_config (id, city, region, postal_code_prefixes, suburbs, updated_by, updated_at)
VALUES (1, $1, $2, $3, $4, $5, now())
ON CONFLICT (id) DO UPDATE SET
	city = EXCLUDED.city,
	region = EXCLUDED.region,
	postal_code_prefixes = EXCLUDED.postal_code_prefixes,
	suburbs = EXCLUDED.suburbs,
	updated_by = EXCLUDED.updated_by,
	updated_at = now()
RETURNING city, region, postal_code_prefixes, suburbs, updated_by, updated_at`
)

type freightConfigRepository struct {
	db *pgxpool.Pool
}

func NewFreightConfigRepository(db *pgxpool.Pool) domain.FreightConfigRepository {
	return &freightConfigRepository{db: db}
}

// freightConfigRow mirrors a freight_config row as scanned by pgx.
type freightConfigRow struct {
	LocalCost              pgtype.Numeric
	NorthIslandCost        pgtype.Numeric
	SouthIslandCost        pgtype.Numeric
	NorthAmericaCost       pgtype.Numeric
	AsiaCost               pgtype.Numeric
	EuropeCost             pgtype.Numeric
	AfricaCost             pgtype.Numeric
	LatinAmericaCost       pgtype.Numeric
	IsFreeFreightEnabled   bool
	ThresholdLocal         pgtype.Numeric
	ThresholdNational      pgtype.Numeric
	ThresholdInternational pgtype.Numeric
	UpdatedBy              string
	UpdatedAt              pgtype.Timestamptz
}

func (row *freightConfigRow) dest() []any {
	return []any{
		&row.LocalCost, &row.NorthIslandCost, &row.SouthIslandCost, &row.NorthAmericaCost,
		&row.AsiaCost, &row.EuropeCost, &row.AfricaCost, &row.LatinAmericaCost,
		&row.IsFreeFreightEnabled, &row.ThresholdLocal, &row.ThresholdNational, &row.ThresholdInternational,
		&row.UpdatedBy, &row.UpdatedAt,
	}
}

func (row freightConfigRow) toDomain() *domain.FreightConfig {
	return &domain.FreightConfig{
		LocalCost:              numericToFloat64(row.LocalCost),
		NorthIslandCost:        numericToFloat64(row.NorthIslandCost),
		SouthIslandCost:        numericToFloat64(row.SouthIslandCost),
		NorthAmericaCost:       numericToFloat64(row.NorthAmericaCost),
		AsiaCost:               numericToFloat64(row.AsiaCost),
		EuropeCost:             numericToFloat64(row.EuropeCost),
		AfricaCost:             numericToFloat64(row.AfricaCost),
		LatinAmericaCost:       numericToFloat64(row.LatinAmericaCost),
		IsFreeFreightEnabled:   row.IsFreeFreightEnabled,
		ThresholdLocal:         numericToFloat64(row.ThresholdLocal),
		ThresholdNational:      numericToFloat64(row.ThresholdNational),
		ThresholdInternational: numericToFloat64(row.ThresholdInternational),
		UpdatedBy:              row.UpdatedBy,
		UpdatedAt:              pgtimeToTime(row.UpdatedAt),
	}
}

func freightConfigArgs(cfg *domain.FreightConfig) []any {
	return []any{
		float64ToNumeric(cfg.LocalCost),
		float64ToNumeric(cfg.NorthIslandCost),
		float64ToNumeric(cfg.SouthIslandCost),
		float64ToNumeric(cfg.NorthAmericaCost),
		float64ToNumeric(cfg.AsiaCost),
		float64ToNumeric(cfg.EuropeCost),
		float64ToNumeric(cfg.AfricaCost),
		float64ToNumeric(cfg.LatinAmericaCost),
		cfg.IsFreeFreightEnabled,
		float64ToNumeric(cfg.ThresholdLocal),
		float64ToNumeric(cfg.ThresholdNational),
		float64ToNumeric(cfg.ThresholdInternational),
		cfg.UpdatedBy,
	}
}

type localZoneRow struct {
	City               string
	Region             string
	PostalCodePrefixes []string
	Suburbs            []string
	UpdatedBy          string
	UpdatedAt          pgtype.Timestamptz
}

func (row *localZoneRow) dest() []any {
	return []any{&row.City, &row.Region, &row.PostalCodePrefixes, &row.Suburbs, &row.UpdatedBy, &row.UpdatedAt}
}

func (row localZoneRow) toDomain() *domain.LocalZoneConfig {
	return &domain.LocalZoneConfig{
		City:               row.City,
		Region:             row.Region,
		PostalCodePrefixes: nonNilStrings(row.PostalCodePrefixes),
		Suburbs:            nonNilStrings(row.Suburbs),
		UpdatedBy:          row.UpdatedBy,
		UpdatedAt:          pgtimeToTime(row.UpdatedAt),
	}
}

func (r *freightConfigRepository) GetFreightConfig(ctx context.Context) (*domain.FreightConfig, error) {
	start := time.Now()
	var row freightConfigRow
	err := r.db.QueryRow(ctx, getFreightConfigSQL).Scan(row.dest()...)
	logger.DBQuery(ctx, "GetFreightConfig", time.Since(start), ignoreNoRows(err))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to load freight config: %w", err)
	}
	return row.toDomain(), nil
}

func (r *freightConfigRepository) SaveFreightConfig(ctx context.Context, cfg *domain.FreightConfig) (*domain.FreightConfig, error) {
	start := time.Now()
	var row freightConfigRow
	err := r.db.QueryRow(ctx, upsertFreightConfigSQL, freightConfigArgs(cfg)...).Scan(row.dest()...)
	logger.DBQuery(ctx, "SaveFreightConfig", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to save freight config: %w", err)
	}
	return row.toDomain(), nil
}

func (r *freightConfigRepository) GetLocalZoneConfig(ctx context.Context) (*domain.LocalZoneConfig, error) {
	start := time.Now()
	var row localZoneRow
	err := r.db.QueryRow(ctx, getLocalZoneConfigSQL).Scan(row.dest()...)
	logger.DBQuery(ctx, "GetLocalZoneConfig", time.Since(start), ignoreNoRows(err))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to load local zone config: %w", err)
	}
	return row.toDomain(), nil
}

func (r *freightConfigRepository) SaveLocalZoneConfig(ctx context.Context, cfg *domain.LocalZoneConfig) (*domain.LocalZoneConfig, error) {
	start := time.Now()
	var row localZoneRow
	err := r.db.QueryRow(ctx, upsertLocalZoneConfigSQL,
		cfg.City, cfg.Region, nonNilStrings(cfg.PostalCodePrefixes), nonNilStrings(cfg.Suburbs), cfg.UpdatedBy,
	).Scan(row.dest()...)
	logger.DBQuery(ctx, "SaveLocalZoneConfig", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to save local zone config: %w", err)
	}
	return row.toDomain(), nil
}

// --- Mappers ---

func numericToFloat64(n pgtype.Numeric) float64 {
	if !n.Valid {
		return 0
	}
	f, _ := n.Float64Value()
	return f.Float64
}

func float64ToNumeric(f float64) pgtype.Numeric {
	var n pgtype.Numeric
	n.Scan(strconv.FormatFloat(f, 'f', 2, 64))
	return n
}

func pgtimeToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// TEXT[] columns are NOT NULL, so an empty list is stored as '{}'.
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// A missing config row is an expected state, not a query failure.
func ignoreNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
