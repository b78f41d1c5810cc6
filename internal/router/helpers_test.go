package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/internal/router"
	"github.com/anonto42/recipe-hub/backend/internal/storage"
	"github.com/anonto42/recipe-hub/backend/pkg/config"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Level: "disabled", Output: io.Discard})
	os.Exit(m.Run())
}

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	// One connection keeps every query on the same in-memory database
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	mediaRoot := t.TempDir()
	cfg := &config.Config{
		Env:           "test",
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		CORSOrigins:   []string{"*"},
		StorageDriver: "local",
		MediaRoot:     mediaRoot,
		MediaURL:      "/media",
	}
	fs, err := storage.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL)
	require.NoError(t, err)

	e, err := router.New(cfg, router.Deps{
		DB:      db,
		Storage: fs,
		Metrics: metrics.New(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	return &testServer{e: e, db: db}
}

func (s *testServer) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// do sends body as JSON when it is not nil
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return s.serve(req, token)
}

// upload sends fields and one file as multipart/form-data
func (s *testServer) upload(t *testing.T, method, path, token string, fields map[string]string, fileField, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return s.serve(req, token)
}

// signup registers username and returns a login token
func (s *testServer) signup(t *testing.T, username string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/register/", "", map[string]string{
		"username":  username,
		"email":     username + "@x.com",
		"password":  "p1",
		"password2": "p1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return s.login(t, username, "p1")
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/login/", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["Token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createRecipe creates a valid recipe and returns its id
func (s *testServer) createRecipe(t *testing.T, token, title string) uint {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/recipes/", token, recipePayload(title))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decode(t, rec)["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func recipePayload(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":            title,
		"description":      "family recipe",
		"ingredients":      []string{"2 eggs", "200g flour"},
		"instructions":     "Mix and bake.",
		"category":         "dessert",
		"preparation_time": 10,
		"cooking_time":     20,
		"servings":         2,
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func results(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	list, ok := decode(t, rec)["results"].([]interface{})
	require.True(t, ok, "results must be a list: %s", rec.Body.String())
	return list
}

func ids(t *testing.T, rec *httptest.ResponseRecorder) []uint {
	t.Helper()
	var out []uint
	for _, item := range results(t, rec) {
		out = append(out, uint(item.(map[string]interface{})["id"].(float64)))
	}
	return out
}

func fieldErrors(t *testing.T, rec *httptest.ResponseRecorder, field string) []string {
	t.Helper()
	raw, _ := decode(t, rec)[field].([]interface{})
	out := make([]string, 0, len(raw))
	for _, m := range raw {
		out = append(out, m.(string))
	}
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
