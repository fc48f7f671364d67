package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"techpulse/app/auth"
	"techpulse/app/database"
	"techpulse/app/news"
)

type fakeFetcher struct {
	articles []news.Article
	err      error
}

func (f *fakeFetcher) Fetch(ctx context.Context, selector string) ([]news.Article, error) {
	return f.articles, f.err
}

type fakeAssistant struct {
	answer   string
	article  string
	err      error
	askCalls int
}

func (f *fakeAssistant) Ask(ctx context.Context, question, title, summary string) (string, error) {
	f.askCalls++
	return f.answer, f.err
}

func (f *fakeAssistant) WriteArticle(ctx context.Context, topic string) (string, error) {
	return f.article, f.err
}

type testEnv struct {
	router    *gin.Engine
	fetcher   *fakeFetcher
	assistant *fakeAssistant
	updates   *database.UpdateRepositoryMem
}

func newTestEnv() *testEnv {
	fetcher := &fakeFetcher{}
	assistant := &fakeAssistant{}
	updates := database.NewUpdateRepositoryMem()
	authService := auth.NewService(database.NewUserRepositoryMem(), "test-secret")

	handler := NewHandler(fetcher, nil, assistant, authService, updates)
	router := NewServer(handler, authService, []string{"*"})

	return &testEnv{router: router, fetcher: fetcher, assistant: assistant, updates: updates}
}

func (e *testEnv) request(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv()

	for _, path := range []string{"/api/health", "/api/test"} {
		w := env.request(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		require.NotEmpty(t, body["status"])
		require.NotEmpty(t, body["message"])
	}
}

func TestGetNews(t *testing.T) {
	env := newTestEnv()
	env.fetcher.articles = []news.Article{
		{Title: "A", Link: "https://example.com/a", Summary: "text", Source: "Test"},
		{Title: "B", Link: "https://example.com/b", Summary: "text", Source: "Test"},
	}

	w := env.request(http.MethodGet, "/api/news?source=all", "")
	require.Equal(t, http.StatusOK, w.Code)

	var articles []news.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &articles))
	require.Len(t, articles, 2)
	require.Equal(t, "A", articles[0].Title)
}

func TestGetNewsEmptyAggregateIsHardFailure(t *testing.T) {
	env := newTestEnv()
	env.fetcher.err = news.ErrNoArticles

	w := env.request(http.MethodGet, "/api/news", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	require.Equal(t, "Failed to fetch articles", body["error"])
}

func TestGetNewsUpstreamKeyError(t *testing.T) {
	env := newTestEnv()
	env.fetcher.err = news.ErrInvalidAPIKey

	w := env.request(http.MethodGet, "/api/news?source=newsapi", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	require.Contains(t, body["error"], "API key")
}

func TestAskMissingFields(t *testing.T) {
	env := newTestEnv()

	w := env.request(http.MethodPost, "/api/ask", `{"question": "what?"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	require.Equal(t, "Missing required fields", body["error"])
	require.Zero(t, env.assistant.askCalls, "validation failure must not reach the completion service")
}

func TestAsk(t *testing.T) {
	env := newTestEnv()
	env.assistant.answer = "Because the chip is faster."

	w := env.request(http.MethodPost, "/api/ask",
		`{"question": "why?", "title": "New chip", "summary": "A chip release"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "Because the chip is faster.", body["answer"])
	require.Equal(t, 1, env.assistant.askCalls)
}

func TestAskGenerationFailure(t *testing.T) {
	env := newTestEnv()
	env.assistant.err = errors.New("model unavailable")

	w := env.request(http.MethodPost, "/api/ask",
		`{"question": "why?", "title": "New chip", "summary": "A chip release"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	require.Equal(t, "Failed to generate answer", body["error"])
}

func TestGenerateArticle(t *testing.T) {
	env := newTestEnv()
	env.assistant.article = "A generated draft."

	w := env.request(http.MethodPost, "/api/generate-article", `{"topic": "quantum computing"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "A generated draft.", body["article"])
	require.Equal(t, "success", body["status"])

	w = env.request(http.MethodPost, "/api/generate-article", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterLoginFlow(t *testing.T) {
	env := newTestEnv()

	w := env.request(http.MethodPost, "/api/register", `{"username": "alice", "password": "s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, "alice", body["username"])

	// Duplicate registration
	w = env.request(http.MethodPost, "/api/register", `{"username": "alice", "password": "other"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Wrong password
	w = env.request(http.MethodPost, "/api/login", `{"username": "alice", "password": "nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Successful login sets the session cookie
	w = env.request(http.MethodPost, "/api/login", `{"username": "alice", "password": "s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")

	// Authenticated user info
	w = env.request(http.MethodGet, "/api/user", "", session)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	require.Equal(t, "alice", body["username"])

	// Logout invalidates the session
	w = env.request(http.MethodPost, "/api/logout", "", session)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(http.MethodGet, "/api/user", "", session)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserUnauthenticated(t *testing.T) {
	env := newTestEnv()

	w := env.request(http.MethodGet, "/api/user", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv()

	w := env.request(http.MethodPost, "/api/register", `{"username": "alice"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBigTechMatrix(t *testing.T) {
	env := newTestEnv()

	_, err := env.updates.CreateUpdate(database.CompanyNvidia, database.UpdateAIDevelopment,
		"New GPU", "Release details", "https://example.com")
	require.NoError(t, err)

	w := env.request(http.MethodGet, "/api/big-tech-matrix", "")
	require.Equal(t, http.StatusOK, w.Code)

	var matrix map[string]map[string]database.CompanyUpdate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matrix))

	require.Len(t, matrix, 7)
	require.Equal(t, "New GPU", matrix["NVIDIA"]["AI_DEVELOPMENT"].Title)
	require.Empty(t, matrix["TESLA"])
}

func TestCreateUpdateValidation(t *testing.T) {
	env := newTestEnv()

	w := env.request(http.MethodPost, "/api/big-tech-updates",
		`{"company": "INVALID", "category": "PRODUCT", "title": "t", "content": "c"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Rejected before any write
	updates, err := env.updates.ByCategory(database.UpdateProduct, 10)
	require.NoError(t, err)
	require.Empty(t, updates)

	w = env.request(http.MethodPost, "/api/big-tech-updates",
		`{"company": "META", "category": "BOGUS", "title": "t", "content": "c"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUpdate(t *testing.T) {
	env := newTestEnv()

	w := env.request(http.MethodPost, "/api/big-tech-updates",
		`{"company": "META", "category": "PARTNERSHIPS", "title": "Deal", "content": "Details", "source_url": "https://example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var update database.CompanyUpdate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &update))
	require.NotEmpty(t, update.ID)
	require.Equal(t, database.CompanyMeta, update.Company)
	require.False(t, update.Date.IsZero())
}

func TestGetCompanyUpdates(t *testing.T) {
	env := newTestEnv()

	for i := 0; i < 7; i++ {
		_, err := env.updates.CreateUpdate(database.CompanyAmazon, database.UpdateProduct,
			"release", "content", "")
		require.NoError(t, err)
	}

	w := env.request(http.MethodGet, "/api/big-tech/companies/AMAZON/updates", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	updates := body["updates"].([]any)
	require.Len(t, updates, 5, "default limit is 5")

	w = env.request(http.MethodGet, "/api/big-tech/companies/AMAZON/updates?limit=2", "")
	body = decode(t, w)
	require.Len(t, body["updates"].([]any), 2)

	w = env.request(http.MethodGet, "/api/big-tech/companies/UNKNOWN/updates", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoryUpdates(t *testing.T) {
	env := newTestEnv()

	_, err := env.updates.CreateUpdate(database.CompanyApple, database.UpdateRegulatory,
		"filing", "content", "")
	require.NoError(t, err)

	w := env.request(http.MethodGet, "/api/big-tech/categories/REGULATORY/updates", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Len(t, body["updates"].([]any), 1)

	// Empty category still returns an array
	w = env.request(http.MethodGet, "/api/big-tech/categories/MARKET_IMPACT/updates", "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	require.NotNil(t, body["updates"])
	require.Len(t, body["updates"].([]any), 0)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodOptions, "/api/news", nil)
	req.Header.Set("Origin", "https://app.example.com")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
