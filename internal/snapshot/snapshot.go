// Package snapshot persists brain state in a SQLite database so a sandbox
// can be resumed with the memories, marks, orders and spawn budgets its
// actors had.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roguemind/internal/brain"
	"roguemind/internal/ecs"
)

// Record is one brain in one save slot.
type Record struct {
	ID        uint           `gorm:"primarykey"`
	Slot      string         `gorm:"uniqueIndex:idx_slot_entity;not null"`
	EntityID  uint64         `gorm:"uniqueIndex:idx_slot_entity"`
	BrainType string         `gorm:"not null"`
	State     datatypes.JSON `json:"state"`
	SavedAt   time.Time
}

// TableName keeps the table name stable if the type is renamed.
func (Record) TableName() string { return "brain_snapshots" }

// Store reads and writes snapshots.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the database at path and migrates the schema. An empty
// path uses a shared in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot db: %w", err)
	}
	if path == "" {
		log.Info().Msg("Using in-memory snapshot DB")
	} else {
		log.Info().Str("path", path).Msg("Using snapshot DB")
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save replaces slot with the current state of every brain in reg and
// returns how many were written.
func (s *Store) Save(slot string, reg *brain.Registry) (int, error) {
	now := time.Now().UTC()
	var records []Record
	for _, id := range reg.IDs() {
		b, _ := reg.Get(id)
		data, err := json.Marshal(b)
		if err != nil {
			return 0, fmt.Errorf("snapshot entity %d: %w", id, err)
		}
		records = append(records, Record{
			Slot:      slot,
			EntityID:  uint64(id),
			BrainType: b.Type,
			State:     datatypes.JSON(data),
			SavedAt:   now,
		})
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slot = ?", slot).Delete(&Record{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return 0, fmt.Errorf("save slot %q: %w", slot, err)
	}
	s.log.Debug().Str("slot", slot).Int("brains", len(records)).Msg("snapshot saved")
	return len(records), nil
}

// Load restores the brains of reg from slot and returns how many were
// restored. Records for entities reg does not hold are skipped with a
// warning.
func (s *Store) Load(slot string, reg *brain.Registry) (int, error) {
	var records []Record
	if err := s.db.Where("slot = ?", slot).Order("entity_id").Find(&records).Error; err != nil {
		return 0, fmt.Errorf("load slot %q: %w", slot, err)
	}
	n := 0
	for _, rec := range records {
		b, ok := reg.Get(ecs.EntityID(rec.EntityID))
		if !ok {
			s.log.Warn().Str("slot", slot).Uint64("entity", rec.EntityID).Str("brain", rec.BrainType).
				Msg("no brain to restore into")
			continue
		}
		if err := b.Restore(rec.State); err != nil {
			return n, fmt.Errorf("load slot %q entity %d: %w", slot, rec.EntityID, err)
		}
		n++
	}
	return n, nil
}

// Slots lists the saved slot names.
func (s *Store) Slots() ([]string, error) {
	var slots []string
	err := s.db.Model(&Record{}).Distinct("slot").Order("slot").Pluck("slot", &slots).Error
	return slots, err
}
