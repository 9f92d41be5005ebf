package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/config"
	"pocketledger/internal/kv"
	"pocketledger/internal/localstore"
	"pocketledger/internal/logger"
	"pocketledger/internal/router"
	"pocketledger/internal/testutil"
	"pocketledger/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	Store  *localstore.Store
	Router *gin.Engine
}

// phoneCounter gives each test its own phone number.
var phoneCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	config.Set(&config.Config{
		Env:              "test",
		JWTSecret:        "integration-test-secret",
		JWTExpirationDur: time.Hour,
	})
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	store := localstore.New(kv.NewGormStore(db))
	return &testApp{Store: store, Router: router.New(store)}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// newPhone returns a phone number unique to this test run.
func newPhone() string {
	return fmt.Sprintf("+91 98%08d", phoneCounter.Add(1))
}

// login starts a session for phone and returns the bearer token.
func (app *testApp) login(t *testing.T, phone string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/auth/session", fmt.Sprintf(`{"phone":%q}`, phone), "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// addTransaction creates a transaction and returns its ID.
func (app *testApp) addTransaction(t *testing.T, token, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)
}
