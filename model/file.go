// Package model defines database models
package model

import "time"

type File struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Name the client submitted the file under. Untrusted, only kept
	// for display purposes
	OriginalFilename string `gorm:"size:255;not null" json:"original_filename"`

	// Name the file is stored under on disk. A fresh UUID plus the
	// original extension, so uploads never collide
	SystemFilename string `gorm:"size:255;not null;uniqueIndex" json:"system_filename"`

	// Exact number of bytes written to disk
	FileSizeBytes int64 `gorm:"not null" json:"file_size_bytes"`

	UploadedAt time.Time `gorm:"not null;index" json:"uploaded_at"`
}
