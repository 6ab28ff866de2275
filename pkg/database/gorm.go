package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"knagent-be/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, maxOpen int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return nil
}

// NewGormDBFromDSN opens Postgres, or SQLite when dsn starts with "sqlite://".
// SQLite has no vector type, so knowledge search is unavailable there.
func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, sqlitePrefix) {
		return NewSQLiteDB(strings.TrimPrefix(dsn, sqlitePrefix))
	}
	if dsn == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := configureConnectionPool(db, 100); err != nil {
		return nil, err
	}
	return db, nil
}

// NewSQLiteDB uses a single connection so ":memory:" databases stay shared.
func NewSQLiteDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: getLogger(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := configureConnectionPool(db, 1); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates the record tables. On Postgres it also enables pgvector
// and builds the cosine index for knowledge chunks.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&model.ConversationTurn{},
		&model.Account{},
		&model.LeaveRequest{},
		&model.UnansweredQuery{},
	}

	if db.Dialector.Name() != "postgres" {
		return db.AutoMigrate(models...)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	if err := db.AutoMigrate(append(models, &model.KnowledgeChunk{})...); err != nil {
		return err
	}
	return db.Exec(`CREATE INDEX IF NOT EXISTS knowledge_chunks_embedding_idx
		ON knowledge_chunks USING hnsw (embedding vector_cosine_ops)`).Error
}
