package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/internal/usecase"
	"smart-dine/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type fakeAuth struct {
	usecase.AuthService
	register    func(*request.RegisterRequest) (*response.RegisterResponse, error)
	verifyEmail func(string) (*response.VerifyEmailResponse, error)
	loggedOut   string
}

func (f *fakeAuth) Register(_ context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	return f.register(req)
}

func (f *fakeAuth) VerifyEmail(_ context.Context, token string) (*response.VerifyEmailResponse, error) {
	return f.verifyEmail(token)
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return nil
}

func TestRegister_EmptyBodyReachesFieldRules(t *testing.T) {
	var got *request.RegisterRequest
	h := NewAuthHandler(&fakeAuth{register: func(req *request.RegisterRequest) (*response.RegisterResponse, error) {
		got = req
		return nil, utils.ErrBadRequest(utils.CodeMissingUsername, "Username is required.")
	}}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/accounts/register", nil))

	require.NotNil(t, got)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Status)
	assert.Equal(t, utils.CodeMissingUsername, env.Error)
	assert.Equal(t, "Username is required.", env.Message)
}

func TestRegister_MalformedJSON(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/accounts/register", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.CodeValidation, decodeEnvelope(t, rec).Error)
}

func TestRegister_Created(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{register: func(req *request.RegisterRequest) (*response.RegisterResponse, error) {
		return &response.RegisterResponse{EmailSent: true, Username: req.Username, Email: req.Email}, nil
	}}, zap.NewNop())

	body := `{"username":"chef","email":"chef@example.com","password":"Str0ng!Pass"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/accounts/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Status)
	assert.JSONEq(t, `{"email_sent":true,"username":"chef","email":"chef@example.com"}`, string(env.Data))
}

func TestVerifyEmail_AlreadyVerifiedMessage(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{verifyEmail: func(token string) (*response.VerifyEmailResponse, error) {
		assert.Equal(t, "abc", token)
		return &response.VerifyEmailResponse{AlreadyVerified: true}, nil
	}}, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/verify-email/{token}", h.VerifyEmail)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verify-email/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Email already verified. You can now login.", decodeEnvelope(t, rec).Message)
}

func TestLogout_UsesSessionToken(t *testing.T) {
	auth := &fakeAuth{}
	h := NewAuthHandler(auth, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/accounts/logout", nil)
	req = req.WithContext(utils.SetTokenContext(req.Context(), "tok"))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok", auth.loggedOut)
}

func TestWriteServiceError_HidesInfrastructureErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, zap.NewNop(), errors.New("pq: connection refused"), "do thing")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, utils.CodeServerError, env.Error)
	assert.Equal(t, "Internal server error", env.Message)
}

type fakeOrders struct {
	usecase.OrderService
	filter  entity.OrderFilter
	created *uuid.UUID
	origin  string
}

func (f *fakeOrders) List(_ context.Context, filter entity.OrderFilter) ([]response.OrderResponse, error) {
	f.filter = filter
	return []response.OrderResponse{}, nil
}

func (f *fakeOrders) Create(_ context.Context, userID *uuid.UUID, _ *request.CreateOrderRequest, origin string) (*response.OrderResponse, error) {
	f.created = userID
	f.origin = origin
	return &response.OrderResponse{}, nil
}

func (f *fakeOrders) Get(_ context.Context, _ uuid.UUID) (*response.OrderResponse, error) {
	return nil, utils.ErrNotFound("Order not found")
}

func TestOrderAdminList_ParsesFilters(t *testing.T) {
	orders := &fakeOrders{}
	h := NewOrderHandler(orders, zap.NewNop())

	rec := httptest.NewRecorder()
	h.AdminList(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders?status=pending&order_type=delivery&date_from=2024-01-01", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", orders.filter.Status)
	assert.Equal(t, "delivery", orders.filter.OrderType)
	require.NotNil(t, orders.filter.DateFrom)
	assert.Equal(t, "2024-01-01", orders.filter.DateFrom.Format("2006-01-02"))
	assert.Nil(t, orders.filter.DateTo)
}

func TestOrderAdminList_BadDate(t *testing.T) {
	h := NewOrderHandler(&fakeOrders{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.AdminList(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders?date_to=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.CodeInvalidDate, decodeEnvelope(t, rec).Error)
}

func TestCreateOrder_AttachesSignedInUser(t *testing.T) {
	orders := &fakeOrders{}
	h := NewOrderHandler(orders, zap.NewNop())
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	req = req.WithContext(utils.SetUserContext(req.Context(), userID, false))
	rec := httptest.NewRecorder()
	h.CreateOrder(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, orders.created)
	assert.Equal(t, userID, *orders.created)
	assert.Equal(t, usecase.OriginStorefront, orders.origin)
}

func TestOrderAdminGet_BadIDIsNotFound(t *testing.T) {
	h := NewOrderHandler(&fakeOrders{}, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/orders/{id}", h.AdminGet)

	for _, path := range []string{"/orders/42", "/orders/" + uuid.NewString()} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, utils.CodeNotFound, decodeEnvelope(t, rec).Error)
	}
}

type fakePayments struct {
	usecase.PaymentService
	payload   []byte
	signature string
}

func (f *fakePayments) HandleWebhook(_ context.Context, payload []byte, signature string) error {
	f.payload = payload
	f.signature = signature
	return nil
}

func TestWebhook_PassesRawBodyAndSignature(t *testing.T) {
	payments := &fakePayments{}
	h := NewPaymentHandler(payments, zap.NewNop())

	body := `{"id":"evt_1","type":"checkout.session.completed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, string(payments.payload))
	assert.Equal(t, "t=1,v1=abc", payments.signature)
}

type fakeUsers struct {
	usecase.UserService
	active bool
}

func (f *fakeUsers) ToggleStatus(_ context.Context, _ uuid.UUID) (*response.ToggleStatusResponse, error) {
	return &response.ToggleStatusResponse{IsActive: f.active}, nil
}

func TestToggleStatus_Message(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/users/{id}/toggle-status", NewUserHandler(&fakeUsers{active: false}, zap.NewNop()).ToggleStatus)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/"+uuid.NewString()+"/toggle-status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deactivated successfully", decodeEnvelope(t, rec).Message)
}

type fakeAdmin struct {
	usecase.AdminService
	days int
}

func (f *fakeAdmin) SalesReport(_ context.Context, days int) (*response.SalesReportResponse, error) {
	f.days = days
	return &response.SalesReportResponse{}, nil
}

func TestSalesReport_ClampsDays(t *testing.T) {
	admin := &fakeAdmin{}
	h := NewAdminHandler(admin, zap.NewNop())

	rec := httptest.NewRecorder()
	h.SalesReport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/reports/sales?days=5000", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 365, admin.days)

	rec = httptest.NewRecorder()
	h.SalesReport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/reports/sales", nil))
	assert.Equal(t, 30, admin.days)
}

func TestSessionMeta_UsesPeerAddress(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/accounts/login", nil)
	req.RemoteAddr = "203.0.113.7:40000"
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 198.51.100.9")
	req.Header.Set("User-Agent", "smart-dine-test")

	meta := sessionMeta(req)
	assert.Equal(t, "203.0.113.7", meta.IPAddress)
	assert.Equal(t, "smart-dine-test", meta.UserAgent)
}
