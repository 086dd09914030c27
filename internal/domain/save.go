package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedAsset records one finalized local save of a retrieved media asset
type SavedAsset struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Platform    Platform    `json:"platform" gorm:"not null;index"`
	ContentKind ContentKind `json:"content_kind" gorm:"not null"`
	Quality     string      `json:"quality,omitempty"`
	SourceURL   string      `json:"source_url" gorm:"not null"`
	FileName    string      `json:"file_name" gorm:"not null"`
	FilePath    string      `json:"file_path" gorm:"not null"`
	SizeBytes   int64       `json:"size_bytes"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// NewSavedAsset creates a ledger record for a finalized save
func NewSavedAsset(platform Platform, kind ContentKind, quality, sourceURL, fileName, filePath string, size int64) *SavedAsset {
	return &SavedAsset{
		ID:          uuid.New().String(),
		Platform:    platform,
		ContentKind: kind,
		Quality:     quality,
		SourceURL:   sourceURL,
		FileName:    fileName,
		FilePath:    filePath,
		SizeBytes:   size,
		CreatedAt:   time.Now(),
	}
}

// SaveRepository persists the saved-asset ledger
type SaveRepository interface {
	Create(asset *SavedAsset) error
	FindByID(id string) (*SavedAsset, error)
	FindAll(filters map[string]interface{}) ([]*SavedAsset, error)
	Delete(id string) error
	Count() (int64, error)
	Close() error
}
