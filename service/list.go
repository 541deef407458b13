package service

import (
	"fmt"

	"filedrop/upload-api/model"
)

// List returns every upload record, newest first. Rows inserted in the
// same clock tick share a timestamp, so the id breaks the tie
func (u *Uploader) List() ([]model.File, error) {
	var files []model.File

	err := u.DB.
		Order("uploaded_at DESC, id DESC").
		Find(&files).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to read file records, %w", err)
	}

	return files, nil
}
