package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/platform-admin-api/internal/dto"
	"github.com/noah-isme/platform-admin-api/internal/handler"
	"github.com/noah-isme/platform-admin-api/internal/service"
)

type mockModeratorService struct {
	loginResponse dto.LoginResponse
	loginErr      error

	createResponse dto.ModeratorResponse
	createErr      error
	createActor    uint

	deleteErr error
	getErr    error
	updateErr error
	listErr   error
}

func (m *mockModeratorService) Create(_ context.Context, _ dto.ModeratorCreateRequest, createdByAdminID uint) (dto.ModeratorResponse, error) {
	m.createActor = createdByAdminID
	if m.createErr != nil {
		return dto.ModeratorResponse{}, m.createErr
	}
	return m.createResponse, nil
}

func (m *mockModeratorService) List(_ context.Context, _ dto.ModeratorListRequest) (dto.ModeratorListResponse, error) {
	if m.listErr != nil {
		return dto.ModeratorListResponse{}, m.listErr
	}
	return dto.ModeratorListResponse{}, nil
}

func (m *mockModeratorService) Get(_ context.Context, _ uint) (dto.ModeratorResponse, error) {
	if m.getErr != nil {
		return dto.ModeratorResponse{}, m.getErr
	}
	return m.createResponse, nil
}

func (m *mockModeratorService) Update(_ context.Context, _ uint, _ dto.ModeratorUpdateRequest) (dto.ModeratorResponse, error) {
	if m.updateErr != nil {
		return dto.ModeratorResponse{}, m.updateErr
	}
	return m.createResponse, nil
}

func (m *mockModeratorService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

func (m *mockModeratorService) Login(_ context.Context, _ dto.LoginRequest) (dto.LoginResponse, error) {
	if m.loginErr != nil {
		return dto.LoginResponse{}, m.loginErr
	}
	return m.loginResponse, nil
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockModeratorService{loginResponse: dto.LoginResponse{
		Token: "token-123",
		User:  dto.ModeratorResponse{ID: 1, Username: "mod1", Email: "m1@x.com", IsModerator: true},
	}}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api"))

	resp := postJSON(t, app, "/api/login", dto.LoginRequest{Email: "m1@x.com", Password: "pw123"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
		Message string            `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "login successful", body.Message)
	require.Equal(t, "token-123", body.Data.Token)
	require.Equal(t, "mod1", body.Data.User.Username)
}

func TestAuthHandler_LoginFailuresShareOneShape(t *testing.T) {
	svc := &mockModeratorService{loginErr: service.ErrInvalidCredentials}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api"))

	wrongPassword := postJSON(t, app, "/api/login", dto.LoginRequest{Email: "m1@x.com", Password: "wrong"})
	notModerator := postJSON(t, app, "/api/login", dto.LoginRequest{Email: "user@x.com", Password: "pw123"})

	require.Equal(t, fiber.StatusBadRequest, wrongPassword.StatusCode)
	require.Equal(t, fiber.StatusBadRequest, notModerator.StatusCode)

	first, err := io.ReadAll(wrongPassword.Body)
	require.NoError(t, err)
	second, err := io.ReadAll(notModerator.Body)
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
	require.Contains(t, string(first), "invalid credentials or not a moderator")
}

func TestAuthHandler_LoginRejectsMalformedJSON(t *testing.T) {
	svc := &mockModeratorService{}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api"))

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader([]byte("{not-json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
