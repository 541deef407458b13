package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"filedrop/upload-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) FileUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open multipart file", zap.String("requestID", requestID), zap.Error(err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read multipart file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	res, err := a.Uploader.Upload(fh.Filename, content)
	if err != nil {
		switch {
		case errors.Is(err, validators.ErrNoFilename), errors.Is(err, validators.ErrEmptyFile):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case errors.Is(err, validators.ErrFileTooLarge):
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":     "File too large. Maximum size is " + maxSizeLabel(a.Uploader.MaxSize),
				"requestID": requestID,
			})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to process upload",
				zap.String("requestID", requestID),
				zap.String("filename", fh.Filename),
				zap.Error(err),
			)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": res.Message,
		"file_id": res.FileID,
	})
}

func maxSizeLabel(maxBytes int64) string {
	return strconv.FormatInt(maxBytes>>20, 10) + " MB"
}
