package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/v1/member/signup", fiber.Map{
		"email":    "student@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	decodeBody(t, resp, &body)
	assert.NotZero(t, body.ID)
	assert.Equal(t, "student@example.com", body.Email)

	// password is stored hashed
	var member models.Member
	require.NoError(t, env.db.First(&member, body.ID).Error)
	assert.NotEqual(t, "password123", member.Password)
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/v1/member/signup", fiber.Map{
		"email":    "dup@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var first struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &first)

	resp = env.request(t, "POST", "/api/v1/member/signup", fiber.Map{
		"email":    "dup@example.com",
		"password": "otherpassword",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// first member row is unaffected
	var count int64
	env.db.Model(&models.Member{}).Where("email = ?", "dup@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
	var member models.Member
	require.NoError(t, env.db.First(&member, first.ID).Error)
	assert.Equal(t, "dup@example.com", member.Email)
}

func TestSignupInvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/v1/member/signup", fiber.Map{
		"email":    "not-an-email",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, "POST", "/api/v1/member/signup", fiber.Map{
		"email":    "short@example.com",
		"password": "short",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginAndGetMember(t *testing.T) {
	env := newTestEnv(t)
	memberID, token := env.signupAndLogin(t, "login@example.com")

	resp := env.request(t, "GET", "/api/v1/member/", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, memberID, body.ID)
	assert.Equal(t, "login@example.com", body.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signupAndLogin(t, "wrongpw@example.com")

	resp := env.request(t, "POST", "/api/v1/member/login", fiber.Map{
		"email":    "wrongpw@example.com",
		"password": "not-the-password",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/v1/member/login", fiber.Map{
		"email":    "ghost@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// A token that is still cryptographically valid must be rejected once
// the session store entry is gone.
func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signupAndLogin(t, "logout@example.com")

	resp := env.request(t, "POST", "/api/v1/member/logout", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "GET", "/api/v1/member/", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMissingToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/api/v1/member/", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/api/v1/member/", nil, "not.a.jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
