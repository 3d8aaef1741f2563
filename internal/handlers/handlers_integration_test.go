package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"jaba/internal/handlers"
	"jaba/internal/middleware"
	"jaba/internal/models"
	"jaba/internal/repositories"
	"jaba/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers/services wired like main does.
func setupApp() (*fiber.App, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Proposal{},
		&models.Comment{},
		&models.Vote{},
		&models.Credential{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	governanceService := services.NewGovernanceService(
		repositories.NewGORMUserRepository(db),
		repositories.NewGORMCategoryRepository(db),
		repositories.NewGORMProposalRepository(db),
		repositories.NewGORMCommentRepository(db),
		repositories.NewGORMVoteRepository(db),
		nil, // no event publisher in tests
	)
	authService := services.NewAuthService(repositories.NewGORMCredentialRepository(db), "test_jwt_secret")

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(governanceService)
	categoryHandler := handlers.NewCategoryHandler(governanceService)
	proposalHandler := handlers.NewProposalHandler(governanceService)

	app := fiber.New()

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protectedRoutes)
	categoryHandler.RegisterRoutes(protectedRoutes)
	proposalHandler.RegisterRoutes(protectedRoutes)

	return app, nil
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(ioutil.Discard)
	code := m.Run()
	os.Exit(code)
}

// doJSON performs a JSON request against the test app, with an optional
// bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

// registerAndLogin provisions a credential for the principal and returns a
// bearer token for it.
func registerAndLogin(t *testing.T, app *fiber.App, principal string) string {
	t.Helper()
	credentials := map[string]string{"principal": principal, "password": "password123"}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", credentials)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", credentials)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	credentials := map[string]string{"principal": "auth-flow", "password": "password123"}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", credentials)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Duplicate registration conflicts
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", credentials)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", credentials)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])

	// Wrong password is rejected
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"principal": "auth-flow",
		"password":  "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestEndpointsRequireAuth(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/proposals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/categories", "", map[string]string{"name": "NoAuth"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestGovernanceFlow(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, app, "flow-alice")

	// Register the registry profile for the principal
	resp := doJSON(t, app, http.MethodPost, "/api/v1/users", token, map[string]string{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "flow-alice", user.Principal)
	assert.Equal(t, models.RoleUser, user.Role)

	// Create a category
	resp = doJSON(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Flow Infra"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var category models.Category
	decodeBody(t, resp, &category)
	assert.NotEmpty(t, category.ID)

	// Create a proposal
	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals", token, map[string]string{
		"title":       "Flow Upgrade",
		"description": "Do it",
		"category":    category.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var proposal models.Proposal
	decodeBody(t, resp, &proposal)
	assert.Equal(t, models.StatusOpen, proposal.Status)
	assert.Equal(t, uint64(0), proposal.YesVotes)

	// Vote yes
	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/votes", token, map[string]string{"choice": "yes"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var voted models.Proposal
	decodeBody(t, resp, &voted)
	assert.Equal(t, uint64(1), voted.YesVotes)

	// Second vote by the same principal conflicts
	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/votes", token, map[string]string{"choice": "yes"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflict map[string]interface{}
	decodeBody(t, resp, &conflict)
	assert.Equal(t, services.CodeDuplicateVote, conflict["code"])

	// Comment on the proposal
	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/comments", token, map[string]string{"content": "ship it"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/proposals/"+proposal.ID+"/comments", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []models.Comment
	decodeBody(t, resp, &comments)
	assert.Len(t, comments, 1)
	assert.Equal(t, "ship it", comments[0].Content)

	// End the proposal: 1 yes vs 0 no executes
	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/end", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var ended models.Proposal
	decodeBody(t, resp, &ended)
	assert.Equal(t, models.StatusExecuted, ended.Status)

	// The proposal is now immutable
	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/end", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestOnlyCreatorMayEndProposal(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	creatorToken := registerAndLogin(t, app, "end-creator")
	otherToken := registerAndLogin(t, app, "end-other")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users", creatorToken, map[string]string{
		"name": "Creator", "email": "creator@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/categories", creatorToken, map[string]string{"name": "End Authz"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var category models.Category
	decodeBody(t, resp, &category)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals", creatorToken, map[string]string{
		"title":       "Creator Only",
		"description": "Only I may close this",
		"category":    category.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var proposal models.Proposal
	decodeBody(t, resp, &proposal)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/end", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, services.CodeNotCreator, body["code"])
}

func TestProposalErrorMapping(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, app, "mapping-user")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users", token, map[string]string{
		"name": "Mapper", "email": "mapper@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Unknown category on proposal creation maps to 404
	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals", token, map[string]string{
		"title":       "Mapping Orphan",
		"description": "No such category",
		"category":    "missing-category",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, services.CodeUnknownCategory, body["code"])

	// Duplicate category maps to 409
	resp = doJSON(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Mapping Dup"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "mapping dup"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, services.CodeDuplicateCategory, body["code"])

	// Unknown proposal lookup maps to 404
	resp = doJSON(t, app, http.MethodGet, "/api/v1/proposals/does-not-exist", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Invalid vote choice maps to 400
	respCat := doJSON(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Mapping Votes"})
	assert.Equal(t, http.StatusCreated, respCat.StatusCode)
	var category models.Category
	decodeBody(t, respCat, &category)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals", token, map[string]string{
		"title":       "Mapping Choice",
		"description": "Vote on me",
		"category":    category.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var proposal models.Proposal
	decodeBody(t, resp, &proposal)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/votes", token, map[string]string{"choice": "maybe"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, services.CodeInvalidChoice, body["code"])
}

func TestProposalPaginationQuery(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	token := registerAndLogin(t, app, "pagination-user")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users", token, map[string]string{
		"name": "Pager", "email": "pager@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Pagination"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var category models.Category
	decodeBody(t, resp, &category)

	for i := 0; i < 3; i++ {
		resp = doJSON(t, app, http.MethodPost, "/api/v1/proposals", token, map[string]string{
			"title":       fmt.Sprintf("Pagination Proposal %d", i),
			"description": "One of several",
			"category":    category.ID,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/proposals?offset=0&limit=2", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page []models.Proposal
	decodeBody(t, resp, &page)
	assert.Len(t, page, 2)

	// Out-of-range offset yields an empty page, not an error
	resp = doJSON(t, app, http.MethodGet, "/api/v1/proposals?offset=1000&limit=2", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Empty(t, page)

	// A malformed offset is a client error
	resp = doJSON(t, app, http.MethodGet, "/api/v1/proposals?offset=minus-one&limit=2", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
