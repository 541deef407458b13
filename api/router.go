// Package api contains all endpoints available
package api

import (
	"filedrop/upload-api/db"
	"filedrop/upload-api/middleware"
	"filedrop/upload-api/service"
	"filedrop/upload-api/storage"
	"fmt"
	"slices"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Uploader *service.Uploader
}

func NewRouter() (*API, error) {
	a := &API{}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	files, err := storage.NewLocal(viper.GetString("storage.upload_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload storage, %w", err)
	}

	maxUploadSize := viper.GetInt64("upload.max_size")
	a.Uploader = service.NewUploader(db, files, maxUploadSize)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(corsConfig()),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	uploadHandlers := []gin.HandlerFunc{
		// Some slack on top of the file cap for the multipart framing,
		// oversized files still get rejected by the upload validation
		middleware.BodySizeLimiter(maxUploadSize + 1<<20),
	}

	if viper.GetBool("rate_limit.enabled") {
		uploadHandlers = append(uploadHandlers, middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: viper.GetInt("rate_limit.rps"),
			Burst:             viper.GetInt("rate_limit.burst"),
		}))
	}

	// GET / 			-> Service banner and endpoint map
	router.GET("/", cacheFor(60), a.RootInfo)

	// HEAD /heartbeat 		-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	// POST /upload-document	-> Uploads a new file and stores its metadata
	router.POST("/upload-document", append(uploadHandlers, a.FileUpload)...)

	// GET /files 			-> Returns every upload record, newest first
	router.GET("/files", a.FileList)

	return a, nil
}

func corsConfig() cors.Config {
	origins := viper.GetStringSlice("cors.allowed_origins")

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	// The wildcard can't be combined with credentials, so only lock the
	// config down when explicit origins were given
	if slices.Contains(origins, "*") || len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cfg
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
