// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stockbook/backend/config"
	"github.com/stockbook/backend/internal/infra/dependency"
	"github.com/stockbook/backend/internal/integration/persistence/model"
	"github.com/stockbook/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var suiteInit sync.Once
var testDB *mock.Db
var testServer *httptest.Server
var watcherCancel context.CancelFunc

// testContext holds the per-scenario state.
type testContext struct {
	headers         map[string]string
	client          *http.Client
	response        *response
	responseHeaders http.Header

	accessToken string
	ownerID     uuid.UUID
	ownerIDs    map[string]uuid.UUID

	// IDs captured from responses, referenced by {{...}} placeholders.
	lastItemID    string
	lastSaleID    string
	lastExpenseID string
}

type response struct {
	status int
	body   any
	raw    []byte
}

// startSuite boots one application instance shared by every scenario: an
// in-memory sqlite database, a miniredis instance, and the real router wired
// through the injector. The alert queue table uses a Postgres array column
// and is excluded here; alert delivery is covered by package-level tests.
func startSuite() {
	suiteInit.Do(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb("stockbook", map[string]any{
			"sales":           &model.SaleModel{},
			"expenses":        &model.ExpenseModel{},
			"inventory_items": &model.InventoryItemModel{},
		})

		redisClient := mock.NewRedis()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret

		injector := dependency.NewInjector(cfg, testDB.DbConn, redisClient)
		engine := injector.Router.Setup("test")
		testServer = httptest.NewServer(engine)

		// The watcher runs against miniredis so live metrics scenarios
		// exercise the real publish/recompute path.
		var watcherCtx context.Context
		watcherCtx, watcherCancel = context.WithCancel(context.Background())
		go func() {
			_ = injector.Watcher.Run(watcherCtx)
		}()
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		startSuite()
	})

	ctx.AfterSuite(func() {
		if watcherCancel != nil {
			watcherCancel()
		}
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	startSuite()

	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		ownerIDs: make(map[string]uuid.UUID),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.reset()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Data setup steps
	ctx.Given(`^the following inventory items exist:$`, test.theFollowingInventoryItemsExist)
	ctx.Given(`^the following sales exist:$`, test.theFollowingSalesExist)
	ctx.Given(`^the following expenses exist:$`, test.theFollowingExpensesExist)
	ctx.Given(`^the live metrics have been refreshed$`, test.theLiveMetricsHaveBeenRefreshed)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func (t *testContext) reset() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.ownerID = uuid.Nil
	t.ownerIDs = make(map[string]uuid.UUID)
	t.response = nil
	t.responseHeaders = nil
	t.lastItemID = ""
	t.lastSaleID = ""
	t.lastExpenseID = ""

	if testDB != nil {
		_ = testDB.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) theAPIServerIsRunning() error {
	if testServer == nil {
		return errors.New("test server is not running")
	}
	return nil
}

// iAmAuthenticatedAs mints an access token the way the identity provider
// would, signed with the shared test secret. Each email maps to a stable
// owner ID within the scenario.
func (t *testContext) iAmAuthenticatedAs(email string) error {
	ownerID, ok := t.ownerIDs[email]
	if !ok {
		ownerID = uuid.New()
		t.ownerIDs[email] = ownerID
	}
	t.ownerID = ownerID

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"owner_id": ownerID.String(),
		"email":    email,
		"exp":      jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":      jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign access token: %w", err)
	}

	t.accessToken = signed
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{item_id}}", t.lastItemID)
	content = strings.ReplaceAll(content, "{{sale_id}}", t.lastSaleID)
	content = strings.ReplaceAll(content, "{{expense_id}}", t.lastExpenseID)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := testServer.URL + path

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
		raw:    raw,
	}
	t.responseHeaders = resp.Header

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = body

	t.captureIDs(method, path, body)
	return nil
}

// captureIDs remembers IDs from create responses so later steps can reference
// them through placeholders.
func (t *testContext) captureIDs(method, path string, body map[string]any) {
	if method != http.MethodPost {
		return
	}

	if id, ok := body["id"].(string); ok {
		switch {
		case strings.HasPrefix(path, "/api/v1/inventory"):
			t.lastItemID = id
		case strings.HasPrefix(path, "/api/v1/sales"):
			t.lastSaleID = id
		}
	}

	// Expense submissions return the created batch.
	if expenses, ok := body["expenses"].([]any); ok && len(expenses) > 0 {
		if first, ok := expenses[0].(map[string]any); ok {
			if id, ok := first["id"].(string); ok {
				t.lastExpenseID = id
			}
		}
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	actual := t.responseHeaders.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

// responseField resolves a dot-separated field path, with numeric segments
// indexing into arrays (e.g. "buckets.0.sales").
func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	current := t.response.body
	for _, segment := range strings.Split(field, ".") {
		switch v := current.(type) {
		case map[string]any:
			value, ok := v[segment]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
			}
			current = value
		case []any:
			var index int
			if _, err := fmt.Sscanf(segment, "%d", &index); err != nil {
				return nil, fmt.Errorf("field '%s': '%s' is not an array index", field, segment)
			}
			if index < 0 || index >= len(v) {
				return nil, fmt.Errorf("field '%s': index %d out of range", field, index)
			}
			current = v[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
		}
	}
	return current, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	var count int64
	if err := testDB.DbConn.Model(entity).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}
