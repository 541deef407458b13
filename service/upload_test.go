package service

import (
	"path/filepath"
	"strings"
	"testing"

	"filedrop/upload-api/model"
	"filedrop/upload-api/storage"
	"filedrop/upload-api/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestUploader(t *testing.T, maxSize int64) *Uploader {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "files.db")))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.File{}))

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	return NewUploader(db, store, maxSize)
}

func rowCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model.File{}).Count(&n).Error)
	return n
}

func TestUpload(t *testing.T) {
	t.Run("persists the file and its record", func(t *testing.T) {
		u := newTestUploader(t, 50<<20)

		res, err := u.Upload("notes.txt", []byte("0123456789"))
		require.NoError(t, err)
		assert.Positive(t, res.FileID)
		assert.NotEmpty(t, res.Message)

		var rec model.File
		require.NoError(t, u.DB.First(&rec, res.FileID).Error)
		assert.Equal(t, "notes.txt", rec.OriginalFilename)
		assert.Equal(t, int64(10), rec.FileSizeBytes)
		assert.True(t, strings.HasSuffix(rec.SystemFilename, ".txt"))
		assert.False(t, rec.UploadedAt.IsZero())

		assert.True(t, u.Store.Exists(rec.SystemFilename), "file missing on disk")
	})

	t.Run("keeps extensionless names extensionless", func(t *testing.T) {
		u := newTestUploader(t, 50<<20)

		res, err := u.Upload("archive", []byte("data"))
		require.NoError(t, err)

		var rec model.File
		require.NoError(t, u.DB.First(&rec, res.FileID).Error)
		assert.NotContains(t, rec.SystemFilename, ".")
	})

	t.Run("rejects a missing filename before any side effect", func(t *testing.T) {
		u := newTestUploader(t, 50<<20)

		_, err := u.Upload("", []byte("data"))
		assert.ErrorIs(t, err, validators.ErrNoFilename)

		assert.Zero(t, rowCount(t, u.DB))
		names, err := u.Store.List()
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("rejects an empty file before any side effect", func(t *testing.T) {
		u := newTestUploader(t, 50<<20)

		_, err := u.Upload("notes.txt", nil)
		assert.ErrorIs(t, err, validators.ErrEmptyFile)

		assert.Zero(t, rowCount(t, u.DB))
		names, err := u.Store.List()
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("rejects an oversized file before any side effect", func(t *testing.T) {
		u := newTestUploader(t, 1<<10)

		_, err := u.Upload("big.bin", make([]byte, 1<<10+1))
		assert.ErrorIs(t, err, validators.ErrFileTooLarge)

		assert.Zero(t, rowCount(t, u.DB))
		names, err := u.Store.List()
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("deletes the file when the metadata write fails", func(t *testing.T) {
		u := newTestUploader(t, 50<<20)

		// Dropping the table makes the insert fail after the file is
		// already on disk
		require.NoError(t, u.DB.Migrator().DropTable(model.File{}))

		_, err := u.Upload("notes.txt", []byte("0123456789"))
		assert.ErrorIs(t, err, ErrMetadataWrite)

		names, listErr := u.Store.List()
		require.NoError(t, listErr)
		assert.Empty(t, names, "orphan left behind after failed metadata write")
	})

	t.Run("assigns distinct storage names to identical uploads", func(t *testing.T) {
		u := newTestUploader(t, 50<<20)

		first, err := u.Upload("notes.txt", []byte("same bytes"))
		require.NoError(t, err)
		second, err := u.Upload("notes.txt", []byte("same bytes"))
		require.NoError(t, err)

		var a, b model.File
		require.NoError(t, u.DB.First(&a, first.FileID).Error)
		require.NoError(t, u.DB.First(&b, second.FileID).Error)

		assert.NotEqual(t, a.SystemFilename, b.SystemFilename)
		assert.True(t, u.Store.Exists(a.SystemFilename))
		assert.True(t, u.Store.Exists(b.SystemFilename))
	})
}
