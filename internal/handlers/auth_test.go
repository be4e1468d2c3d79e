package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tasknest-api/internal/dto"
	apierrors "github.com/yukikurage/tasknest-api/internal/errors"
	"github.com/yukikurage/tasknest-api/internal/models"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := setupTestEnv(t)

	payload := map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "supersecret",
	}
	w := env.do(http.MethodPost, "/api/auth/signup", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	response := decode[dto.UserDTO](t, w)
	assert.Equal(t, "newuser", response.Username)
	assert.Equal(t, "newuser@example.com", response.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = env.do(http.MethodPost, "/api/auth/signup", payload, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_SignupValidation(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "12345",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[apierrors.APIError](t, w)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, body.Code)
	assert.Equal(t, map[string]interface{}{"field": "password"}, body.Details)

	w = env.do(http.MethodPost, "/api/auth/signup", map[string]string{"username": "newuser"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := setupTestEnv(t)
	user, cookies := env.signupAndLogin("existing")

	w := env.do(http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, decode[dto.UserDTO](t, w).ID)

	w = env.do(http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin("existing")

	w := env.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, decode[apierrors.APIError](t, w).Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.signupAndLogin("existing")

	w := env.do(http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	env := setupTestEnv(t)
	user, cookies := env.signupAndLogin("leaving")
	taskID := env.createTask(cookies, map[string]interface{}{"name": "t", "category": "Work", "priority": "Low"})
	w := env.do(http.MethodPost, "/api/tasks/"+itoa(taskID)+"/comments", map[string]string{"content": "bye"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodDelete, "/api/auth/account", nil, cookies)
	require.Equal(t, http.StatusNoContent, w.Code)

	var users, tasks, comments int64
	env.db.Model(&models.User{}).Where("id = ?", user.ID).Count(&users)
	env.db.Model(&models.Task{}).Count(&tasks)
	env.db.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, users)
	assert.Zero(t, tasks)
	assert.Zero(t, comments)

	w = env.do(http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
