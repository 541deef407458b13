// Package service contains the business logic behind the endpoints
package service

import (
	"errors"
	"fmt"
	"time"

	"filedrop/upload-api/model"
	"filedrop/upload-api/storage"
	"filedrop/upload-api/util"
	"filedrop/upload-api/validators"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrStorageWrite means the file never made it to disk. Nothing was
	// persisted, not even a metadata row
	ErrStorageWrite = errors.New("failed to store file")

	// ErrMetadataWrite means the file was written but its row wasn't.
	// The file gets deleted again before this is returned
	ErrMetadataWrite = errors.New("failed to save file metadata")
)

// UploadResult is returned after a successful upload
type UploadResult struct {
	FileID  uint   `json:"file_id"`
	Message string `json:"message"`
}

// Uploader coordinates a single upload: validate, write the file, write
// the metadata row, and undo the file write if the row never lands.
// It holds no per-request state, so one instance serves all requests
type Uploader struct {
	DB      *gorm.DB
	Store   *storage.LocalStore
	MaxSize int64
}

func NewUploader(db *gorm.DB, store *storage.LocalStore, maxSize int64) *Uploader {
	return &Uploader{
		DB:      db,
		Store:   store,
		MaxSize: maxSize,
	}
}

// Upload persists one file and its metadata row.
//
// The order matters: the file is written first and the row only after
// that succeeded, so a row never points at a file that doesn't exist.
// The other direction is tolerated, a failure after the file write
// leaves at worst an orphan on disk which the insert-failure cleanup
// removes again. If that cleanup itself fails it's logged and the
// metadata error is still what the caller gets back
func (u *Uploader) Upload(originalName string, content []byte) (*UploadResult, error) {
	if err := validators.UploadFile(originalName, int64(len(content)), u.MaxSize); err != nil {
		return nil, err
	}

	storageName := util.StorageName(originalName)

	if err := u.Store.Save(storageName, content); err != nil {
		return nil, fmt.Errorf("%w, %w", ErrStorageWrite, err)
	}

	rec := model.File{
		OriginalFilename: originalName,
		SystemFilename:   storageName,
		FileSizeBytes:    int64(len(content)),
		UploadedAt:       time.Now().UTC(),
	}

	if err := u.DB.Create(&rec).Error; err != nil {
		if delErr := u.Store.Delete(storageName); delErr != nil {
			zap.L().Error("Failed to clean up file after failed metadata write",
				zap.String("system_filename", storageName),
				zap.Error(delErr),
			)
		}

		return nil, fmt.Errorf("%w, %w", ErrMetadataWrite, err)
	}

	return &UploadResult{
		FileID:  rec.ID,
		Message: "File uploaded successfully",
	}, nil
}
