package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/shobi-backend/pkg/db"
	"github.com/angelmondragon/shobi-backend/pkg/db/models"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SQLSlot persists slots in the favorite_slots table.
type SQLSlot struct {
	db *gorm.DB
	tx txRunner
}

// NewSQLSlot binds the slot to a database client; the table comes from the
// goose migrations.
func NewSQLSlot(client *db.Client) *SQLSlot {
	return &SQLSlot{db: client.DB(), tx: client}
}

func (s *SQLSlot) Read(ctx context.Context, name string) ([]byte, error) {
	var row models.FavoriteSlot
	err := s.db.WithContext(ctx).Where("name = ?", name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("load favorites slot: %w", err)
	}
	return []byte(row.Payload), nil
}

// Write updates the row in place and inserts it on first use. A concurrent
// first insert surfaces as a unique violation and falls back to the update.
func (s *SQLSlot) Write(ctx context.Context, name string, payload []byte) error {
	now := time.Now().UTC()
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.FavoriteSlot{}).
			Where("name = ?", name).
			Updates(map[string]any{"payload": string(payload), "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&models.FavoriteSlot{Name: name, Payload: string(payload), UpdatedAt: now}).Error
	})
	if db.IsUniqueViolation(err, "") {
		err = s.db.WithContext(ctx).
			Model(&models.FavoriteSlot{}).
			Where("name = ?", name).
			Updates(map[string]any{"payload": string(payload), "updated_at": now}).
			Error
	}
	if err != nil {
		return fmt.Errorf("save favorites slot: %w", err)
	}
	return nil
}

func (s *SQLSlot) Backend() string { return "sql" }
