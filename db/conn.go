// Package db contains things related to the metadata database
package db

import (
	"filedrop/upload-api/model"
	"filedrop/upload-api/util"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch viper.GetString("database.driver") {
	case "postgres":
		db, err = gorm.Open(postgres.Open(viper.GetString("database.dsn")))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres, %w", err)
		}
	default:
		path := viper.GetString("database.path")

		// If running in a docker container don't allow the default sqlite
		// file to be created. The host should instead mount it using volumes
		if util.IsRunningInDocker() && path == "files.db" {
			if _, err := os.Stat(path); err != nil {
				if os.IsNotExist(err) {
					return nil, fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to /app/%s", path)
				}
			}
		}

		db, err = gorm.Open(sqlite.Open(path))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
		}
	}

	err = db.AutoMigrate(model.File{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
