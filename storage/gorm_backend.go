package storage

import (
	"context"

	"neuroflow/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend keeps records in the kv_records table.
type GormBackend struct {
	DB *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{DB: db}
}

// Migrate creates or updates the kv_records table.
func (b *GormBackend) Migrate() error {
	return b.DB.AutoMigrate(&models.KVRecord{})
}

func (b *GormBackend) Load(ctx context.Context, physicalKey string) ([]byte, bool, error) {
	return gormTx{db: b.DB}.Load(ctx, physicalKey)
}

func (b *GormBackend) Save(ctx context.Context, rec Record) error {
	return gormTx{db: b.DB}.Save(ctx, rec)
}

// Atomic runs fn inside a transaction. On postgres the row is locked with FOR UPDATE on load.
func (b *GormBackend) Atomic(ctx context.Context, _ string, fn func(ctx context.Context, tx Tx) error) error {
	return b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, gormTx{db: tx, forUpdate: tx.Dialector.Name() == DriverPostgres})
	})
}

func (b *GormBackend) Namespaces(ctx context.Context) ([]string, error) {
	var namespaces []string
	err := b.DB.WithContext(ctx).
		Model(&models.KVRecord{}).
		Distinct("namespace").
		Order("namespace").
		Pluck("namespace", &namespaces).Error
	return namespaces, err
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormTx struct {
	db        *gorm.DB
	forUpdate bool
}

func (t gormTx) Load(ctx context.Context, physicalKey string) ([]byte, bool, error) {
	q := t.db.WithContext(ctx)
	if t.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	// read as text: a value that is not valid JSON must reach the decoder, not fail the scan
	var rows []rawValue
	err := q.Model(&models.KVRecord{}).
		Select("CAST(value AS TEXT) AS value").
		Where("physical_key = ?", physicalKey).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0].Value, true, nil
}

type rawValue struct {
	Value []byte
}

func (t gormTx) Save(ctx context.Context, rec Record) error {
	row := models.KVRecord{
		PhysicalKey: rec.PhysicalKey,
		Namespace:   rec.Namespace,
		LogicalKey:  rec.LogicalKey,
		Value:       datatypes.JSON(rec.Value),
	}
	return t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "physical_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
