package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avolkov/shop-backend/internal/models"
	"github.com/avolkov/shop-backend/internal/repo"
	"github.com/avolkov/shop-backend/internal/service"
	"github.com/avolkov/shop-backend/internal/transport"
)

var testJWTSecret = []byte("test-secret")

type testEnv struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	r := repo.NewGormRepo(db)
	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())

	Register(e, &Deps{
		UserHandler:    &UserHTTP{Svc: &service.UserService{Repo: r, JWTSecret: testJWTSecret}},
		ProductHandler: &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		JWTSecret:      testJWTSecret,
	})
	return &testEnv{e: e, db: db}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// signup registers a user through the API and returns an access token from a
// real login, so tests exercise the same token path as clients do.
func (env *testEnv) signup(t *testing.T, email, password string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/users/signup", "", transport.SignupRequest{Email: email, Password: password})
	require.Equal(t, http.StatusCreated, rec.Code)
	return env.login(t, email, password)
}

func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/users/login", "", transport.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// signupAdmin promotes the user directly in the database and logs in again so
// the token carries the admin claim.
func (env *testEnv) signupAdmin(t *testing.T, email, password string) string {
	t.Helper()

	env.signup(t, email, password)
	require.NoError(t, env.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("is_admin", true).Error)
	return env.login(t, email, password)
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64) *models.Product {
	t.Helper()

	product := models.Product{Name: name, Description: "test product", Price: price, IsActive: true}
	require.NoError(t, env.db.Create(&product).Error)
	return &product
}

func assertFalseBody(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, "false", strings.TrimSpace(rec.Body.String()))
}

func assertTrueBody(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
}
