package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/appogelardexa/ticket-triage/internal/api/http/handlers"
	"github.com/appogelardexa/ticket-triage/internal/auth"
	"github.com/appogelardexa/ticket-triage/internal/config"
	"github.com/appogelardexa/ticket-triage/internal/events"
	"github.com/appogelardexa/ticket-triage/internal/observability"
	"github.com/appogelardexa/ticket-triage/internal/repository"
	"github.com/appogelardexa/ticket-triage/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{}
	cfg.App.Name = "ticket-triage-test"
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 5
	cfg.Auth.BcryptCost = 4
	cfg.Auth.AdminEmail = "admin@localhost"
	cfg.Auth.AdminPassword = "letmein"

	store := repository.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     store,
		ViewRepo:       store,
		TransitionRepo: store,
		ClientRepo:     store.Clients(),
		StaffRepo:      store.Staff(),
		DepartmentRepo: store.Departments(),
		CategoryRepo:   store.Categories(),
		Dispatcher:     dispatcher,
	})
	intakeService := service.NewIntakeService(store.Jobs(), ticketService, dispatcher, logger)

	authService, err := service.NewAuthService(cfg)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, "test", nil, nil),
		Auth:    handlers.NewAuthHandler(authService),
		Tickets: handlers.NewTicketsHandler(ticketService),
		History: handlers.NewHistoryHandler(ticketService),
		Intake:  handlers.NewIntakeHandler(intakeService, ticketService, logger),
		Lookups: handlers.NewLookupsHandler(handlers.LookupDependencies{
			ClientRepo:     store.Clients(),
			StaffRepo:      store.Staff(),
			DepartmentRepo: store.Departments(),
			CategoryRepo:   store.Categories(),
			CompanyRepo:    store.Companies(),
		}),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/auth/token", "", map[string]string{
		"email":    "admin@localhost",
		"password": "letmein",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/tickets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errBody, _ := body["error"].(map[string]any)
	require.NotNil(t, errBody)
	assert.Equal(t, "UNAUTHORIZED", errBody["code"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)
	resp, _ := doJSON(t, app, http.MethodPost, "/auth/token", "", map[string]string{
		"email":    "admin@localhost",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTicketLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/tickets", token, map[string]any{
		"summary":      "cannot print",
		"client_email": "lee@customer.test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data, _ := body["data"].(map[string]any)
	require.NotNil(t, data)
	ticketID, _ := data["ticket_id"].(string)
	require.Regexp(t, `^TCK-\d{6}$`, ticketID)

	resp, _ = doJSON(t, app, http.MethodPatch, "/tickets/"+ticketID, token, map[string]any{
		"status": "open",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/history/status/"+ticketID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	chain, _ := body["data"].([]any)
	require.Len(t, chain, 2)
	first, _ := chain[0].(map[string]any)
	assert.Nil(t, first["from_status"])
	assert.Equal(t, "new", first["to_status"])

	resp, _ = doJSON(t, app, http.MethodGet, "/tickets/TCK-000000", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/tickets/"+ticketID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestIntakeFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/intake", token, map[string]any{
		"ticket": map[string]any{
			"summary":      "mailbox full",
			"client_email": "kim@customer.test",
		},
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	data, _ := body["data"].(map[string]any)
	require.NotNil(t, data)
	jobID, _ := data["job_id"].(string)
	require.NotEmpty(t, jobID)

	require.Eventually(t, func() bool {
		resp, body := doJSON(t, app, http.MethodGet, "/intake/"+jobID, token, nil)
		if resp.StatusCode != http.StatusOK {
			return false
		}
		data, _ := body["data"].(map[string]any)
		status, _ := data["status"].(string)
		return status == "completed"
	}, 3*time.Second, 50*time.Millisecond)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/intake/%s/fail", jobID), token, map[string]any{
		"message": "too late",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestIntakePollIsPublicAndFinalizeIsAdminOnly(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/intake", token, map[string]any{
		"ticket": map[string]any{
			"summary":      "vpn down",
			"client_email": "pat@customer.test",
		},
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	data, _ := body["data"].(map[string]any)
	require.NotNil(t, data)
	jobID, _ := data["job_id"].(string)
	require.NotEmpty(t, jobID)

	// Submitters poll without credentials.
	require.Eventually(t, func() bool {
		resp, body := doJSON(t, app, http.MethodGet, "/intake/"+jobID, "", nil)
		if resp.StatusCode != http.StatusOK {
			return false
		}
		data, _ := body["data"].(map[string]any)
		status, _ := data["status"].(string)
		return status == "completed"
	}, 3*time.Second, 50*time.Millisecond)

	resp, _ = doJSON(t, app, http.MethodGet, "/intake/no-such-job", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/intake/%s/complete", jobID), "", map[string]any{
		"ticket_id": "TCK-001001",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A valid token without the admin role cannot finalize.
	tokens := auth.NewTokenManager("test-secret", 5)
	limited, _, err := tokens.GenerateToken("bot@external.test", "submitter")
	require.NoError(t, err)
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/intake/%s/fail", jobID), limited, map[string]any{
		"message": "gave up",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFilterRejectsMalformedIDParameter(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp, body := doJSON(t, app, http.MethodGet, "/tickets/filter?client_id=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody, _ := body["error"].(map[string]any)
	require.NotNil(t, errBody)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
	details, _ := errBody["details"].(map[string]any)
	require.NotNil(t, details)
	assert.Equal(t, "abc", details["client_id"])
}

func TestLookupEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/lookups/departments", token, map[string]any{
		"name": "Support",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data, _ := body["data"].(map[string]any)
	require.NotNil(t, data)

	resp, body = doJSON(t, app, http.MethodGet, "/lookups/departments", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list, _ := body["data"].([]any)
	assert.Len(t, list, 1)

	resp, _ = doJSON(t, app, http.MethodPost, "/lookups/companies", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
