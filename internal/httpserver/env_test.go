package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/minhtd/product-catalog/internal/models"
	"github.com/minhtd/product-catalog/internal/repo"
	"github.com/minhtd/product-catalog/internal/service"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	JWTSecret []byte
	UploadDir string
}

// rawData behaves like json.RawMessage except that a JSON null decodes to a
// nil slice, so require.Nil can distinguish "data": null from real payloads.
type rawData []byte

func (r *rawData) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = nil
		return nil
	}
	*r = append((*r)[:0], b...)
	return nil
}

type envelopeBody struct {
	StatusCode int     `json:"statusCode"`
	Message    string  `json:"message"`
	Data       rawData `json:"data"`
	Error      any     `json:"error"`
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)
	secret := []byte("test-jwt-secret")
	uploadDir := t.TempDir()

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: secret, BcryptCost: bcrypt.MinCost}
	catalogSvc := &service.CatalogService{Repo: gormRepo}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHandler{Svc: authSvc},
		ProductHandler: &ProductHandler{Svc: catalogSvc},
		UploadHandler:  &UploadHandler{Dir: uploadDir},
		JWTSecret:      secret,
		UploadDir:      uploadDir,
	})

	return &testEnv{
		T:         t,
		E:         e,
		DB:        db,
		JWTSecret: secret,
		UploadDir: uploadDir,
	}
}

func (env *testEnv) doJSON(method, path string, body any, token string) (*httptest.ResponseRecorder, envelopeBody) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var respBody envelopeBody
	if rec.Body.Len() > 0 {
		require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &respBody))
	}
	return rec, respBody
}

func (env *testEnv) registerAndLogin(username, password string) string {
	env.T.Helper()

	payload := map[string]string{"username": username, "password": password}

	rec, _ := env.doJSON(http.MethodPost, "/users/register", payload, "")
	require.Equal(env.T, http.StatusCreated, rec.Code)

	rec, body := env.doJSON(http.MethodPost, "/auth/login", payload, "")
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(env.T, json.Unmarshal(body.Data, &resp))
	require.NotEmpty(env.T, resp.AccessToken)
	return resp.AccessToken
}
