package main

import (
	"filedrop/upload-api/api"
	"filedrop/upload-api/config"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	a, err := api.NewRouter()
	if err != nil {
		panic(err)
	}

	if config.CleanupOrphans() {
		n, err := a.Uploader.SweepOrphans()
		if err != nil {
			panic(err)
		}

		zap.L().Info("Orphan sweep finished", zap.Int("removed", n))
	}

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	err = a.Router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
