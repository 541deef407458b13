package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// setTestConfig puts a throwaway sqlite file and upload directory into
// viper, the same keys config.Setup would fill in
func setTestConfig(t *testing.T) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("app.log_level", "error")
	viper.Set("database.driver", "sqlite")
	viper.Set("database.path", filepath.Join(t.TempDir(), "files.db"))
	viper.Set("storage.upload_dir", filepath.Join(t.TempDir(), "uploads"))
	viper.Set("upload.max_size", int64(50<<20))
	viper.Set("rate_limit.enabled", false)
	viper.Set("cors.allowed_origins", []string{"*"})
}

func newTestAPI(t *testing.T) *API {
	t.Helper()

	setTestConfig(t)

	a, err := NewRouter()
	require.NoError(t, err)

	return a
}

// multipartUpload builds a multipart/form-data request body with one
// file field
func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func doUpload(t *testing.T, a *API, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartUpload(t, "file", filename, content)
	req := httptest.NewRequest(http.MethodPost, "/upload-document", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
