package migrations

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// Migration is the bookkeeping row written for every applied definition.
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

// Migrator applies definitions in registration order, grouping each run
// into a batch so that Rollback undoes whole runs.
type Migrator struct {
	db         *gorm.DB
	log        *slog.Logger
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB, log *slog.Logger) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}
	return &Migrator{
		db:  db,
		log: log,
	}, nil
}

func (m *Migrator) AddMigration(migrations ...MigrationDefinition) {
	m.migrations = append(m.migrations, migrations...)
}

// Migrate runs every pending definition and returns how many were applied.
func (m *Migrator) Migrate() (int, error) {
	m.log.Info("running database migrations")

	batch, err := m.latestBatch()
	if err != nil {
		return 0, err
	}
	batch++

	applied := 0
	for _, migration := range m.migrations {
		done, err := m.hasRun(migration.Name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		m.log.Info("migrating", slog.String("name", migration.Name))

		err = m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("migration %s failed: %w", migration.Name, err)
			}
			record := Migration{Name: migration.Name, Batch: batch}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		applied++
	}

	m.log.Info("migration completed", slog.Int("applied", applied))
	return applied, nil
}

// Rollback undoes the latest steps batches and returns how many definitions
// were reverted.
func (m *Migrator) Rollback(steps int) (int, error) {
	if steps <= 0 {
		steps = 1
	}

	batch, err := m.latestBatch()
	if err != nil {
		return 0, err
	}

	reverted := 0
	for i := 0; i < steps && batch > 0; i++ {
		var records []Migration
		if err := m.db.Where("batch = ?", batch).Order("id DESC").Find(&records).Error; err != nil {
			return reverted, err
		}

		for _, record := range records {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return reverted, fmt.Errorf("migration definition not found: %s", record.Name)
			}
			if migration.Down == nil {
				return reverted, fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			m.log.Info("rolling back", slog.String("name", record.Name), slog.Int("batch", batch))

			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Down(tx); err != nil {
					return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
				}
				if err := tx.Delete(&record).Error; err != nil {
					return fmt.Errorf("failed to remove migration record %s: %w", record.Name, err)
				}
				return nil
			})
			if err != nil {
				return reverted, err
			}
			reverted++
		}

		batch--
	}

	m.log.Info("rollback completed", slog.Int("reverted", reverted))
	return reverted, nil
}

// Status lists the applied migrations, oldest first.
func (m *Migrator) Status() ([]Migration, error) {
	var records []Migration
	err := m.db.Order("batch ASC, id ASC").Find(&records).Error
	return records, err
}

// Pending lists registered definitions that have not been applied.
func (m *Migrator) Pending() ([]string, error) {
	var pending []string
	for _, migration := range m.migrations {
		done, err := m.hasRun(migration.Name)
		if err != nil {
			return nil, err
		}
		if !done {
			pending = append(pending, migration.Name)
		}
	}
	return pending, nil
}

func (m *Migrator) hasRun(name string) (bool, error) {
	var count int64
	err := m.db.Model(&Migration{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (m *Migrator) latestBatch() (int, error) {
	var migration Migration
	err := m.db.Order("batch DESC").First(&migration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return migration.Batch, err
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}
