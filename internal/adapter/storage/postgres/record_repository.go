package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/observability/telemetry"
	"github.com/plantops/greenops/internal/ports"
)

type RecordRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRecordRepository(db *gorm.DB, log *zap.Logger) ports.RecordRepository {
	return &RecordRepository{
		db:  db,
		log: log,
	}
}

// Find returns the records matching the filter, ordered by timestamp then
// zone so detection output is stable across calls.
func (r *RecordRepository) Find(ctx context.Context, filter domain.RecordFilter) ([]domain.OperationalRecord, error) {
	start := time.Now()

	query := r.db.WithContext(ctx).Model(&domain.OperationalRecord{})

	if filter.ZoneID != "" {
		query = query.Where("zone_id = ?", filter.ZoneID)
	}
	if filter.Shift != "" {
		query = query.Where("shift = ?", filter.Shift)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("timestamp >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("timestamp <= ?", filter.EndDate)
	}

	var records []domain.OperationalRecord
	err := query.Order("timestamp asc, zone_id asc").Find(&records).Error

	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		r.log.Error("Failed to query operational records", zap.Error(err))
		return nil, err
	}

	return records, nil
}

// Save inserts the records. Rows that collide on (timestamp, zone_id) are
// skipped, so re-ingesting the same extract is harmless.
func (r *RecordRepository) Save(ctx context.Context, records []domain.OperationalRecord) error {
	if len(records) == 0 {
		return nil
	}

	start := time.Now()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(records, 500).Error

	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		r.log.Error("Failed to save operational records",
			zap.Int("count", len(records)),
			zap.Error(err),
		)
		return err
	}

	r.log.Info("Saved operational records", zap.Int("count", len(records)))
	return nil
}
