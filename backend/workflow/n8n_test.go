package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterCreatedPostsToWebhook(t *testing.T) {
	var gotPath string
	var gotEvent ChapterCreatedEvent

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotEvent))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewN8NClient(server.URL)
	err := client.ChapterCreated(context.Background(), ChapterCreatedEvent{
		ChapterID: 5,
		Title:     "What is a variable?",
	})
	require.NoError(t, err)

	assert.Equal(t, "/chapter", gotPath)
	assert.EqualValues(t, 5, gotEvent.ChapterID)
	assert.Equal(t, "What is a variable?", gotEvent.Title)
}

func TestQuizSubmittedPostsToWebhook(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewN8NClient(server.URL)
	err := client.QuizSubmitted(context.Background(), QuizSubmittedEvent{
		ChapterID: 5,
		QuizID:    9,
		Answer:    "var",
	})
	require.NoError(t, err)
	assert.Equal(t, "/answer", gotPath)
}

func TestErrorStatusSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewN8NClient(server.URL)
	err := client.ChapterCreated(context.Background(), ChapterCreatedEvent{ChapterID: 1})
	assert.Error(t, err)
}

func TestUnreachableEngine(t *testing.T) {
	client := NewN8NClient("http://127.0.0.1:1")
	err := client.ChapterCreated(context.Background(), ChapterCreatedEvent{ChapterID: 1})
	assert.Error(t, err)
}
