package service

import (
	"fmt"

	"filedrop/upload-api/model"

	"go.uber.org/zap"
)

// SweepOrphans deletes files from the upload root that have no metadata
// row. Orphans appear when the process dies between the file write and
// the row insert, they're harmless but waste disk. This runs only when
// asked for via the --cleanup-orphans flag, never on its own.
//
// Returns how many files were removed
func (u *Uploader) SweepOrphans() (int, error) {
	names, err := u.Store.List()
	if err != nil {
		return 0, err
	}

	if len(names) == 0 {
		return 0, nil
	}

	var known []string
	err = u.DB.
		Model(model.File{}).
		Where("system_filename IN ?", names).
		Pluck("system_filename", &known).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to look up file records, %w", err)
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, n := range known {
		knownSet[n] = struct{}{}
	}

	removed := 0
	for _, name := range names {
		if _, ok := knownSet[name]; ok {
			continue
		}

		if err := u.Store.Delete(name); err != nil {
			zap.L().Error("Failed to delete orphaned file", zap.String("name", name), zap.Error(err))
			continue
		}

		removed++
	}

	return removed, nil
}
