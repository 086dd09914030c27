package infrastructure

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// SQLiteSaveRepository implements SaveRepository using SQLite
type SQLiteSaveRepository struct {
	db *gorm.DB
}

// NewSQLiteSaveRepository opens (or creates) the saved-asset ledger
func NewSQLiteSaveRepository(dbPath string) (*SQLiteSaveRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	if err := db.AutoMigrate(&domain.SavedAsset{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger database: %w", err)
	}

	return &SQLiteSaveRepository{db: db}, nil
}

// Create records a finalized save
func (r *SQLiteSaveRepository) Create(asset *domain.SavedAsset) error {
	return r.db.Create(asset).Error
}

// FindByID finds a save record by ID
func (r *SQLiteSaveRepository) FindByID(id string) (*domain.SavedAsset, error) {
	var asset domain.SavedAsset
	err := r.db.First(&asset, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindAll finds all save records with optional filters, newest first
func (r *SQLiteSaveRepository) FindAll(filters map[string]interface{}) ([]*domain.SavedAsset, error) {
	var assets []*domain.SavedAsset
	query := r.db

	for key, value := range filters {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	err := query.Order("created_at DESC").Find(&assets).Error
	return assets, err
}

// Delete removes a save record by ID
func (r *SQLiteSaveRepository) Delete(id string) error {
	return r.db.Delete(&domain.SavedAsset{}, "id = ?", id).Error
}

// Count returns the total number of save records
func (r *SQLiteSaveRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.SavedAsset{}).Count(&count).Error
	return count, err
}

// Close closes the database connection
func (r *SQLiteSaveRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
