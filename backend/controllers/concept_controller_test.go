package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
)

func TestGetConcept(t *testing.T) {
	env := newTestEnv(t)
	memberID, token := env.signupAndLogin(t, "concept@example.com")
	chapterID, _, _, _ := env.createChapter(t, memberID, "What is a variable?")
	env.postFinishWebhook(t, chapterID, "concept")

	resp := env.request(t, "GET", fmt.Sprintf("/api/v1/concept/%d", chapterID), nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var concept models.Concept
	decodeBody(t, resp, &concept)
	require.NotNil(t, concept.Title)
	assert.Equal(t, "Variables", *concept.Title)
}

func TestUpdateConceptMarkLearned(t *testing.T) {
	env := newTestEnv(t)
	memberID, token := env.signupAndLogin(t, "learned@example.com")
	chapterID, conceptID, _, _ := env.createChapter(t, memberID, "What is a variable?")

	resp := env.request(t, "PATCH", fmt.Sprintf("/api/v1/concept/%d", chapterID), fiber.Map{
		"is_complete": true,
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var concept models.Concept
	require.NoError(t, env.db.First(&concept, conceptID).Error)
	assert.True(t, concept.IsComplete)
}

func TestGetConceptNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signupAndLogin(t, "noconcept@example.com")

	resp := env.request(t, "GET", "/api/v1/concept/9999", nil, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
