package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"libraryhub/internal/models"
)

// ConnectDB opens a GORM connection to Postgres and verifies it.
func ConnectDB(dsn string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		// whether borrow records may outlive their book is a runtime policy
		// (DELETE_POLICY), so no FK constraint is enforced at the schema level
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

// MigrateFrontend creates the frontend service schema: its own catalog copy,
// borrow records and users.
func MigrateFrontend(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(&models.Book{}, &models.BorrowedBook{}, &models.User{}); err != nil {
		return fmt.Errorf("failed to migrate frontend schema: %w", err)
	}
	logger.Info("Frontend schema migrated successfully")
	return nil
}

// MigrateAdmin creates the admin service schema. The admin service keeps its
// own copy of books and borrow records but never stores users.
func MigrateAdmin(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(&models.Book{}, &models.BorrowedBook{}); err != nil {
		return fmt.Errorf("failed to migrate admin schema: %w", err)
	}
	logger.Info("Admin schema migrated successfully")
	return nil
}
