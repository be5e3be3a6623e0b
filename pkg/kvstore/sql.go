package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/caffeineveins/pkg/db"
	"github.com/angelmondragon/caffeineveins/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL stores each blob as one kv_entries row on sqlite or postgres.
type SQL struct {
	client *db.Client
	now    func() time.Time
}

// NewSQL expects the kv_entries table to exist (see pkg/migrate).
func NewSQL(client *db.Client) (*SQL, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &SQL{client: client, now: time.Now}, nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := s.client.DB().WithContext(ctx).
		Where("storage_key = ?", key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return entry.Payload, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{
		StorageKey: key,
		Payload:    value,
		UpdatedAt:  s.now().UTC(),
	}
	err := s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Remove(ctx context.Context, key string) error {
	err := s.client.DB().WithContext(ctx).
		Where("storage_key = ?", key).
		Delete(&models.KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SQL) Close() error {
	return s.client.Close()
}
