package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/internal/data/repository"
	"guidee-orders/pkg/auth"
	"guidee-orders/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type apiTestEnv struct {
	router   *chi.Mux
	guideID  uuid.UUID
	service  uuid.UUID
	customer string // bearer tokens
	guide    string
	admin    string
	stranger string
}

func newAPITestEnv(t *testing.T) *apiTestEnv {
	t.Helper()

	guideID := uuid.New()
	serviceID := uuid.New()

	serviceRepo := repository.NewMemoryServiceRepository()
	serviceRepo.Seed(&entity.GuideService{
		Base:            entity.Base{ID: serviceID},
		GuideID:         guideID,
		GuideName:       "Mei-Ling",
		Title:           "Old Town Walking Tour",
		BasePrice:       800,
		Location:        "Taipei",
		MaxParticipants: 10,
		IsActive:        true,
	})

	repos := &repository.Repository{
		Order:   repository.NewMemoryOrderRepository(),
		Service: serviceRepo,
		Outbox:  repository.NewMemoryOutboxRepository(),
	}

	config := &utils.Config{
		App: utils.AppConfig{Name: "guidee-orders-test", Port: "0"},
		JWT: utils.JWTConfig{Secret: testSecret, ExpiryHours: 1},
		Notification: utils.NotificationConfig{
			WorkerInterval: time.Second,
			BatchSize:      10,
			MaxAttempts:    3,
		},
	}

	app := Wiring(repos, config, zap.NewNop())

	mint := func(role string, id uuid.UUID) string {
		token, err := auth.MintToken(testSecret, id, role, time.Hour)
		require.NoError(t, err)
		return token
	}

	return &apiTestEnv{
		router:   app.Router,
		guideID:  guideID,
		service:  serviceID,
		customer: mint(auth.RoleUser, uuid.New()),
		guide:    mint(auth.RoleGuide, guideID),
		admin:    mint(auth.RoleAdmin, uuid.New()),
		stranger: mint(auth.RoleUser, uuid.New()),
	}
}

func (env *apiTestEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	// non-JSON bodies (the health check) leave the envelope nil
	var envelope map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	return rec, envelope
}

func (env *apiTestEnv) createBody() map[string]any {
	return map[string]any{
		"serviceId":    env.service.String(),
		"date":         time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		"startTime":    "09:00",
		"participants": 2,
		"customer": map[string]any{
			"name":  "Chen Wei",
			"email": "chen.wei@example.com",
		},
	}
}

func (env *apiTestEnv) createOrder(t *testing.T) string {
	t.Helper()

	rec, envelope := env.do(t, http.MethodPost, "/api/orders", env.customer, env.createBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := envelope["data"].(map[string]any)
	return data["id"].(string)
}

func TestAPI_Health(t *testing.T) {
	env := newAPITestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_RequiresToken(t *testing.T) {
	env := newAPITestEnv(t)

	rec, envelope := env.do(t, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestAPI_ExpiredTokenRejected(t *testing.T) {
	env := newAPITestEnv(t)

	expired, err := auth.MintToken(testSecret, uuid.New(), auth.RoleUser, -time.Minute)
	require.NoError(t, err)

	rec, _ := env.do(t, http.MethodGet, "/api/orders", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_CreateOrder(t *testing.T) {
	env := newAPITestEnv(t)

	rec, envelope := env.do(t, http.MethodPost, "/api/orders", env.customer, env.createBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "DRAFT", data["status"])

	pricing := data["pricing"].(map[string]any)
	assert.Equal(t, float64(1848), pricing["total"])
}

func TestAPI_CreateOrder_ValidationError(t *testing.T) {
	env := newAPITestEnv(t)

	body := env.createBody()
	delete(body, "serviceId")

	rec, envelope := env.do(t, http.MethodPost, "/api/orders", env.customer, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST_DATA", envelope["error"])
}

func TestAPI_CreateOrder_ParticipantLimit(t *testing.T) {
	env := newAPITestEnv(t)

	body := env.createBody()
	body["participants"] = 21

	rec, envelope := env.do(t, http.MethodPost, "/api/orders", env.customer, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PARTICIPANT_LIMIT_EXCEEDED", envelope["error"])
}

func TestAPI_GetOrder_AccessControl(t *testing.T) {
	env := newAPITestEnv(t)
	orderID := env.createOrder(t)

	path := fmt.Sprintf("/api/orders/%s", orderID)

	for _, token := range []string{env.customer, env.guide, env.admin} {
		rec, _ := env.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec, envelope := env.do(t, http.MethodGet, path, env.stranger, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", envelope["error"])
}

func TestAPI_GetOrder_NotFound(t *testing.T) {
	env := newAPITestEnv(t)

	rec, envelope := env.do(t, http.MethodGet, "/api/orders/"+uuid.NewString(), env.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", envelope["error"])
}

func TestAPI_UpdateOrder_InvalidTransition(t *testing.T) {
	env := newAPITestEnv(t)
	orderID := env.createOrder(t)

	rec, envelope := env.do(t, http.MethodPut, "/api/orders/"+orderID, env.customer,
		map[string]any{"status": "COMPLETED"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", envelope["error"])
}

func TestAPI_CancelOrder_ReasonRequired(t *testing.T) {
	env := newAPITestEnv(t)
	orderID := env.createOrder(t)

	rec, envelope := env.do(t, http.MethodDelete, "/api/orders/"+orderID, env.customer,
		map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST_DATA", envelope["error"])
}

func TestAPI_OrderLifecycle(t *testing.T) {
	env := newAPITestEnv(t)
	orderID := env.createOrder(t)
	path := "/api/orders/" + orderID

	// DRAFT -> PENDING -> CONFIRMED -> PAID
	for _, status := range []string{"PENDING", "CONFIRMED", "PAID"} {
		rec, envelope := env.do(t, http.MethodPut, path, env.customer,
			map[string]any{"status": status})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		data := envelope["data"].(map[string]any)
		assert.Equal(t, status, data["status"])
	}

	// cancel a week out: full refund
	rec, envelope := env.do(t, http.MethodDelete, path, env.customer,
		map[string]any{"reason": "USER_REQUEST", "description": "change of plans"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "CANCELLED", data["status"])

	cancellation := data["cancellation"].(map[string]any)
	assert.Equal(t, "USER_REQUEST", cancellation["reason"])

	refund := cancellation["refundPolicy"].(map[string]any)
	assert.Equal(t, float64(100), refund["refundPercentage"])
	assert.Equal(t, float64(1848), refund["refundAmount"])
}

func TestAPI_ListOrders_ScopedAndPaginated(t *testing.T) {
	env := newAPITestEnv(t)
	env.createOrder(t)
	env.createOrder(t)

	// stranger sees none of them
	rec, envelope := env.do(t, http.MethodGet, "/api/orders?page=1&limit=10", env.stranger, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(0), data["total"])

	// the customer sees both
	rec, envelope = env.do(t, http.MethodGet, "/api/orders?page=1&limit=1", env.customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = envelope["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(2), data["totalPages"])
	assert.Len(t, data["orders"].([]any), 1)
}
