package documentctrl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusIngested = "ingested"
	StatusFailed   = "failed"
)

// Document is the registry row for one ingested file. FileID is the stable
// document identifier (file name without extension); re-uploading the same
// file reuses the row, so re-ingestion overwrites rather than duplicates.
type Document struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	FileID     string    `gorm:"uniqueIndex;not null;column:file_id" json:"file_id"`
	Filename   string    `gorm:"not null" json:"filename"`
	MinioURL   string    `gorm:"not null;column:minio_url" json:"minio_url"` // bucket name + object name
	Status     string    `gorm:"not null" json:"status"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type DocumentService struct {
	db        *gorm.DB
	snowflake *snowflake.Node
}

func NewDocumentService(db *gorm.DB) (*DocumentService, error) {
	// Initialize snowflake node
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %v", err)
	}

	return &DocumentService{
		db:        db,
		snowflake: node,
	}, nil
}

func (s *DocumentService) GetByID(ctx context.Context, id int64) (*Document, error) {
	var doc Document
	result := s.db.WithContext(ctx).First(&doc, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %v", result.Error)
	}
	return &doc, nil
}

func (s *DocumentService) GetByFileID(ctx context.Context, fileID string) (*Document, error) {
	var doc Document
	result := s.db.WithContext(ctx).Where("file_id = ?", fileID).First(&doc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %v", result.Error)
	}
	return &doc, nil
}

// Upsert registers a document upload. An existing row for the same file id
// is reset to pending with the new object URL; otherwise a new row is
// created.
func (s *DocumentService) Upsert(ctx context.Context, fileID, filename, minioURL string) (*Document, error) {
	existing, err := s.GetByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Filename = filename
		existing.MinioURL = minioURL
		existing.Status = StatusPending
		existing.ChunkCount = 0
		if result := s.db.WithContext(ctx).Save(existing); result.Error != nil {
			return nil, fmt.Errorf("failed to update document: %v", result.Error)
		}
		return existing, nil
	}

	doc := &Document{
		ID:       s.snowflake.Generate().Int64(),
		FileID:   fileID,
		Filename: filename,
		MinioURL: minioURL,
		Status:   StatusPending,
	}

	if result := s.db.WithContext(ctx).Create(doc); result.Error != nil {
		return nil, fmt.Errorf("failed to create document: %v", result.Error)
	}

	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, limit, offset int) ([]Document, error) {
	var docs []Document
	result := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&docs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list documents: %v", result.Error)
	}
	return docs, nil
}

// SetStatus records the ingestion outcome for a document.
func (s *DocumentService) SetStatus(ctx context.Context, id int64, status string, chunkCount int) error {
	result := s.db.WithContext(ctx).Model(&Document{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"chunk_count": chunkCount,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update document status: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document not found: %d", id)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *DocumentService) Ping(ctx context.Context) bool {
	sqlDB, err := s.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
