package migrations

import (
	"path/filepath"
	"testing"

	"core/testutil"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type MigratorSuite struct {
	suite.Suite
	db       *gorm.DB
	migrator *Migrator
}

func (s *MigratorSuite) SetupTest() {
	dsn := filepath.Join(s.T().TempDir(), "migrate.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db

	s.migrator, err = NewMigrator(db, testutil.NopLogger())
	s.Require().NoError(err)
	s.migrator.AddMigration(GetLadderMigrations()...)
}

func (s *MigratorSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *MigratorSuite) TestMigrateCreatesTables() {
	applied, err := s.migrator.Migrate()
	s.Require().NoError(err)
	s.Equal(len(GetLadderMigrations()), applied)

	for _, table := range []string{"players", "games", "challenges"} {
		s.True(s.db.Migrator().HasTable(table), table)
	}
	s.True(s.db.Migrator().HasIndex("challenges", "ux_challenges_open_pair"))
	s.True(s.db.Migrator().HasIndex("challenges", "ux_challenges_game"))

	pending, err := s.migrator.Pending()
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *MigratorSuite) TestMigrateIsIdempotent() {
	_, err := s.migrator.Migrate()
	s.Require().NoError(err)

	applied, err := s.migrator.Migrate()
	s.Require().NoError(err)
	s.Zero(applied)

	records, err := s.migrator.Status()
	s.Require().NoError(err)
	s.Len(records, len(GetLadderMigrations()))
	for _, r := range records {
		s.Equal(1, r.Batch)
	}
}

func (s *MigratorSuite) TestSecondRunGetsNewBatch() {
	defs := GetLadderMigrations()

	first, err := NewMigrator(s.db, testutil.NopLogger())
	s.Require().NoError(err)
	first.AddMigration(defs[0])
	_, err = first.Migrate()
	s.Require().NoError(err)

	applied, err := s.migrator.Migrate()
	s.Require().NoError(err)
	s.Equal(len(defs)-1, applied)

	records, err := s.migrator.Status()
	s.Require().NoError(err)
	s.Require().Len(records, len(defs))
	s.Equal(1, records[0].Batch)
	s.Equal(2, records[len(records)-1].Batch)
}

func (s *MigratorSuite) TestRollbackLatestBatch() {
	_, err := s.migrator.Migrate()
	s.Require().NoError(err)

	reverted, err := s.migrator.Rollback(1)
	s.Require().NoError(err)
	s.Equal(len(GetLadderMigrations()), reverted)

	s.False(s.db.Migrator().HasTable("players"))
	s.False(s.db.Migrator().HasTable("challenges"))

	records, err := s.migrator.Status()
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *MigratorSuite) TestRollbackGameIndexOnly() {
	defs := GetLadderMigrations()

	first, err := NewMigrator(s.db, testutil.NopLogger())
	s.Require().NoError(err)
	first.AddMigration(defs[:len(defs)-1]...)
	_, err = first.Migrate()
	s.Require().NoError(err)

	applied, err := s.migrator.Migrate()
	s.Require().NoError(err)
	s.Equal(1, applied)
	s.True(s.db.Migrator().HasIndex("challenges", "ux_challenges_game"))

	reverted, err := s.migrator.Rollback(1)
	s.Require().NoError(err)
	s.Equal(1, reverted)
	s.False(s.db.Migrator().HasIndex("challenges", "ux_challenges_game"))
	s.True(s.db.Migrator().HasIndex("challenges", "ux_challenges_open_pair"))
}

func (s *MigratorSuite) TestRollbackWithoutHistory() {
	reverted, err := s.migrator.Rollback(0)
	s.Require().NoError(err)
	s.Zero(reverted)
}

func (s *MigratorSuite) TestRollbackUnknownDefinition() {
	_, err := s.migrator.Migrate()
	s.Require().NoError(err)

	other, err := NewMigrator(s.db, testutil.NopLogger())
	s.Require().NoError(err)

	_, err = other.Rollback(1)
	s.Require().Error(err)
	s.Contains(err.Error(), "migration definition not found")
}

func TestMigratorSuite(t *testing.T) {
	suite.Run(t, new(MigratorSuite))
}
