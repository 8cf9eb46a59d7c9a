package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/logger"
	"project/backend/realtime"
	"project/backend/routes"
	"project/backend/session"
	"project/backend/utils"
	"project/backend/workflow"
)

// eventRecorder captures emitted realtime events so tests can assert on
// them without an SSE connection.
type eventRecorder struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (r *eventRecorder) Emit(_ context.Context, event realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	events   *eventRecorder
	sessions session.Store
	cfg      *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{
		AppEnv:    "test",
		JWTSecret: "testsecret",
	}
	events := &eventRecorder{}
	sessions := session.NewMemoryStore()

	app := fiber.New()
	routes.SetupRoutes(app, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Sessions: sessions,
		Hub:      realtime.NewHub(logger.NewNop()),
		Events:   events,
		Workflow: workflow.Noop{},
		Log:      logger.NewNop(),
	})

	return &testEnv{app: app, db: db, events: events, sessions: sessions, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signupAndLogin registers a member through the API and returns its id
// and a live access token.
func (e *testEnv) signupAndLogin(t *testing.T, email string) (uint, string) {
	t.Helper()

	resp := e.request(t, "POST", "/api/v1/member/signup", fiber.Map{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = e.request(t, "POST", "/api/v1/member/login", fiber.Map{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var login struct {
		AccessToken string `json:"access_token"`
		MemberID    uint   `json:"member_id"`
	}
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)

	return login.MemberID, login.AccessToken
}

// createChapter posts a question and returns the created ids.
func (e *testEnv) createChapter(t *testing.T, ownerID uint, title string) (chapterID, conceptID, exerciseID, quizID uint) {
	t.Helper()

	resp := e.request(t, "POST", "/api/v1/chapter/", fiber.Map{
		"title":    title,
		"owner_id": ownerID,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ChapterID  uint   `json:"chapter_id"`
		ConceptID  uint   `json:"concept_id"`
		ExerciseID uint   `json:"exercise_id"`
		QuizID     uint   `json:"quiz_id"`
		Status     string `json:"status"`
	}
	decodeBody(t, resp, &created)
	require.Equal(t, "pending", created.Status)

	return created.ChapterID, created.ConceptID, created.ExerciseID, created.QuizID
}
