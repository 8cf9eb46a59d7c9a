package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
)

func TestCreateAndGetCourse(t *testing.T) {
	env := newTestEnv(t)
	memberID, _ := env.signupAndLogin(t, "course@example.com")

	resp := env.request(t, "POST", "/api/v1/course/", fiber.Map{
		"title":       "Go basics",
		"description": "Introductory course",
		"difficulty":  "easy",
		"owner_id":    memberID,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	decodeBody(t, resp, &course)
	assert.Equal(t, "Go basics", course.Title)
	assert.Equal(t, models.DifficultyEasy, course.Difficulty)

	resp = env.request(t, "GET", fmt.Sprintf("/api/v1/course/%d", course.ID), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateCourseDefaultDifficulty(t *testing.T) {
	env := newTestEnv(t)
	memberID, _ := env.signupAndLogin(t, "default@example.com")

	resp := env.request(t, "POST", "/api/v1/course/", fiber.Map{
		"title":    "Untitled difficulty",
		"owner_id": memberID,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	decodeBody(t, resp, &course)
	assert.Equal(t, models.DifficultyMedium, course.Difficulty)
}

func TestListCourses(t *testing.T) {
	env := newTestEnv(t)
	memberID, _ := env.signupAndLogin(t, "list@example.com")

	for i := 0; i < 3; i++ {
		resp := env.request(t, "POST", "/api/v1/course/", fiber.Map{
			"title":    fmt.Sprintf("Course %d", i),
			"owner_id": memberID,
		}, "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := env.request(t, "GET", "/api/v1/course/", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var courses []models.Course
	decodeBody(t, resp, &courses)
	assert.Len(t, courses, 3)
}

func TestGetCourseNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/api/v1/course/9999", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
