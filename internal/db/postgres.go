package db

import (
  "fmt"
  "strings"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/lumenlearn/content-backend/internal/types"
  "github.com/lumenlearn/content-backend/internal/utils"
  "github.com/lumenlearn/content-backend/internal/logger"
)

type PostgresService struct {
  db     *gorm.DB
  driver string
  log    *logger.Logger
}

// NewPostgresService connects to Postgres, or to SQLite when DB_DRIVER=sqlite
// (local development and tests; no uuid-ossp there, ids come from the app).
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))
  if driver == "sqlite" {
    path := utils.GetEnv("SQLITE_PATH", "content.db", log)
    log.Info("Connecting to SQLite...", "path", path)
    sdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
    if err != nil {
      log.Error("Failed to connect to SQLite", "error", err)
      return nil, fmt.Errorf("Failed to connect to SQLite: %w", err)
    }
    return &PostgresService{db: sdb, driver: driver, log: serviceLog}, nil
  }

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "content", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    log.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }
  log.Info("uuid-ossp extension enabled")

  return &PostgresService{db: db, driver: driver, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.CourseModule{},
    &types.Lesson{},
    &types.LessonLocalization{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  if s.driver == "sqlite" {
    return nil
  }
  s.log.Info("Configuring foreign key relationships...")
  if err := s.db.Exec(`
    ALTER TABLE "lesson_localization"
    DROP CONSTRAINT IF EXISTS "fk_lesson_localization_lesson_id";
  `).Error; err != nil {
    return fmt.Errorf("Failed to reset fk_lesson_localization_lesson_id: %w", err)
  }
  if err := s.db.Exec(`
    ALTER TABLE "lesson_localization"
    ADD CONSTRAINT "fk_lesson_localization_lesson_id"
    FOREIGN KEY ("lesson_id")
    REFERENCES "lesson"("id")
    ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("Failed to add fk_lesson_localization_lesson_id: %w", err)
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
