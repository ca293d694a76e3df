package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
	httpx "github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/http"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/http/handlers"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/http/middleware"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/auth"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/i18n"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/infrastructure/repositories"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/mocks"
	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/internal/services"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

type testStack struct {
	Server   *httptest.Server
	Notifier *mocks.MockNotificationService
	Redis    *miniredis.Miniredis
}

// newTestStack wires the full HTTP stack against in-memory infrastructure:
// miniredis for carts, codes and rate windows, SQLite for orders, products
// and admin accounts, and a recording notifier standing in for Twilio.
func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repositories.DBOrder{}, &repositories.DBProduct{}, &repositories.DBAdmin{}))

	now := time.Now()
	require.NoError(t, db.Create(&repositories.DBProduct{
		ID: "branza-1", Name: "Branza de burduf", Price: 29.99, Stock: 10,
		IsAvailable: true, CreatedAt: now, UpdatedAt: now,
	}).Error)

	passwordSvc := auth.NewPasswordService()
	hash, err := passwordSvc.Hash("parola123")
	require.NoError(t, err)
	adminRepo := repositories.NewAdminRepository(db)
	require.NoError(t, adminRepo.Create(context.Background(), &domain.Admin{
		Email: "admin@pfdl.ro", PasswordHash: hash, Role: "admin",
	}))

	messages := i18n.NewCatalog(map[string]map[string]string{
		"sms.verification_code": {"ro": "Codul tau este %s, valabil %d minute."},
		"sms.order_created":     {"ro": "Comanda %s a fost inregistrata."},
		"sms.order_confirmed":   {"ro": "Comanda %s a fost confirmata."},
		"sms.order_completed":   {"ro": "Comanda %s a fost livrata."},
		"sms.order_cancelled":   {"ro": "Comanda %s a fost anulata."},
	}, "ro")

	notifier := mocks.NewMockNotificationService()
	store := repositories.NewRecordStore(client)
	cartRepo := repositories.NewCartRepository(client, store)
	catalog := repositories.NewProductRepository(db)
	limiter := repositories.NewRateLimiter(client, "verify:rate:", time.Hour, 5)

	cartSvc := services.NewCartService(cartRepo, catalog, 24*time.Hour)
	verifySvc := services.NewVerificationService(store, client, limiter, notifier, messages, services.VerificationConfig{
		Length: 6, TTL: 10 * time.Minute, MaxAttempts: 5, VerifiedTTL: 30 * time.Minute, Locale: "ro",
	})
	orderRepo := repositories.NewOrderRepository(db)
	orderSvc := services.NewOrderService(orderRepo, cartSvc, verifySvc, notifier, messages, "ro")

	tokenSvc := auth.NewJWTService("test-secret", "pe-foc-de-lemne", time.Hour)
	adminAuthSvc := services.NewAdminAuthService(adminRepo, passwordSvc, tokenSvc, time.Hour)

	r := httpx.BuildRouter(
		handlers.NewCartHandlers(cartSvc),
		handlers.NewCheckoutHandlers(verifySvc, orderSvc),
		handlers.NewAdminHandlers(adminAuthSvc, orderSvc),
		middleware.NewAuthMW(tokenSvc),
		middleware.NewPolicyMW(mocks.NewMockPolicyService()),
	)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testStack{Server: server, Notifier: notifier, Redis: mr}
}

func (s *testStack) request(t *testing.T, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}

	req, err := http.NewRequest(method, s.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestCheckoutFlow(t *testing.T) {
	stack := newTestStack(t)
	phone := "+40712345678"

	var sessionID string
	t.Run("Step 1: build a cart", func(t *testing.T) {
		status, body := stack.request(t, http.MethodPost, "/cart/items", "", map[string]interface{}{
			"product_id": "branza-1", "quantity": 2,
		})
		require.Equal(t, http.StatusCreated, status)

		data := body["data"].(map[string]interface{})
		sessionID = data["session_id"].(string)
		require.NotEmpty(t, sessionID)

		status, body = stack.request(t, http.MethodPost, "/cart/items", "", map[string]interface{}{
			"session_id": sessionID, "product_id": "branza-1", "quantity": 1,
		})
		require.Equal(t, http.StatusOK, status)

		data = body["data"].(map[string]interface{})
		assert.Len(t, data["items"], 1, "same product folds into one line")
		assert.Equal(t, float64(3), data["total_items"])
		assert.InDelta(t, 89.97, data["total_amount"], 0.001)
	})

	var code string
	t.Run("Step 2: request a verification code", func(t *testing.T) {
		status, _ := stack.request(t, http.MethodPost, "/checkout/verification", "", map[string]interface{}{
			"phone": "0712 345 678",
		})
		require.Equal(t, http.StatusOK, status)

		sent := stack.Notifier.LastSent()
		require.NotNil(t, sent)
		assert.Equal(t, phone, sent.To, "phone is normalized before dispatch")

		code = codePattern.FindString(sent.Message)
		require.Len(t, code, 6)
	})

	t.Run("Step 3: wrong code burns one attempt", func(t *testing.T) {
		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}
		status, body := stack.request(t, http.MethodPost, "/checkout/verify", "", map[string]interface{}{
			"phone": phone, "code": wrong,
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, float64(4), body["attempts_remaining"])
	})

	t.Run("Step 4: correct code verifies", func(t *testing.T) {
		status, _ := stack.request(t, http.MethodPost, "/checkout/verify", "", map[string]interface{}{
			"phone": phone, "code": code,
		})
		require.Equal(t, http.StatusOK, status)

		// Codes are one-time use.
		status, _ = stack.request(t, http.MethodPost, "/checkout/verify", "", map[string]interface{}{
			"phone": phone, "code": code,
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	var orderID string
	t.Run("Step 5: place the order", func(t *testing.T) {
		status, body := stack.request(t, http.MethodPost, "/checkout/order", "", map[string]interface{}{
			"session_id": sessionID, "phone": phone,
		})
		require.Equal(t, http.StatusCreated, status)

		data := body["data"].(map[string]interface{})
		orderID = data["id"].(string)
		assert.Equal(t, "pending", data["status"])
		assert.InDelta(t, 89.97, data["total_amount"], 0.001)

		sent := stack.Notifier.LastSent()
		require.NotNil(t, sent)
		assert.Contains(t, sent.Message, data["order_number"])

		// The cart is consumed by the order.
		status, _ = stack.request(t, http.MethodGet, "/cart/"+sessionID, "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	var token string
	t.Run("Step 6: admin login", func(t *testing.T) {
		status, body := stack.request(t, http.MethodPost, "/admin/login", "", map[string]interface{}{
			"email": "admin@pfdl.ro", "password": "parola123",
		})
		require.Equal(t, http.StatusOK, status)

		data := body["data"].(map[string]interface{})
		token = data["access_token"].(string)
		require.NotEmpty(t, token)
	})

	t.Run("Step 7: admin routes require a token", func(t *testing.T) {
		status, _ := stack.request(t, http.MethodGet, "/admin/orders", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("Step 8: list and advance the order", func(t *testing.T) {
		status, body := stack.request(t, http.MethodGet, "/admin/orders?status=pending", token, nil)
		require.Equal(t, http.StatusOK, status)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["count"])

		status, body = stack.request(t, http.MethodPatch, "/admin/orders/"+orderID+"/status", token, map[string]interface{}{
			"status": "confirmed",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "confirmed", body["data"].(map[string]interface{})["status"])

		sent := stack.Notifier.LastSent()
		require.NotNil(t, sent)
		assert.Equal(t, phone, sent.To)

		// Going back to pending is not a legal transition.
		status, _ = stack.request(t, http.MethodPatch, "/admin/orders/"+orderID+"/status", token, map[string]interface{}{
			"status": "pending",
		})
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("Step 9: complete the order", func(t *testing.T) {
		status, body := stack.request(t, http.MethodPatch, "/admin/orders/"+orderID+"/status", token, map[string]interface{}{
			"status": "completed",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "completed", body["data"].(map[string]interface{})["status"])

		// Completed is terminal.
		status, _ = stack.request(t, http.MethodPatch, "/admin/orders/"+orderID+"/status", token, map[string]interface{}{
			"status": "cancelled",
		})
		assert.Equal(t, http.StatusConflict, status)
	})
}

func TestVerificationRateLimitOverHTTP(t *testing.T) {
	stack := newTestStack(t)

	for i := 0; i < 5; i++ {
		status, _ := stack.request(t, http.MethodPost, "/checkout/verification", "", map[string]interface{}{
			"phone": "+40723456789",
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, _ := stack.request(t, http.MethodPost, "/checkout/verification", "", map[string]interface{}{
		"phone": "+40723456789",
	})
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestCartExpiryOverHTTP(t *testing.T) {
	stack := newTestStack(t)

	status, body := stack.request(t, http.MethodPost, "/cart/items", "", map[string]interface{}{
		"product_id": "branza-1", "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	sessionID := body["data"].(map[string]interface{})["session_id"].(string)

	stack.Redis.FastForward(25 * time.Hour)

	status, _ = stack.request(t, http.MethodGet, "/cart/"+sessionID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Ordering from the expired session fails the same way.
	status, _ = stack.request(t, http.MethodPost, "/checkout/order", "", map[string]interface{}{
		"session_id": sessionID, "phone": "+40712345678",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrderRequiresVerifiedPhone(t *testing.T) {
	stack := newTestStack(t)

	status, body := stack.request(t, http.MethodPost, "/cart/items", "", map[string]interface{}{
		"product_id": "branza-1", "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	sessionID := body["data"].(map[string]interface{})["session_id"].(string)

	// Ordering with a phone that never confirmed a code is rejected.
	status, body = stack.request(t, http.MethodPost, "/checkout/order", "", map[string]interface{}{
		"session_id": sessionID, "phone": "+40799999999",
	})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Phone number not verified", body["error"])

	// The cart survives the rejected attempt.
	status, _ = stack.request(t, http.MethodGet, "/cart/"+sessionID, "", nil)
	assert.Equal(t, http.StatusOK, status)

	// Verifying a code for a different phone does not unlock this one.
	status, _ = stack.request(t, http.MethodPost, "/checkout/verification", "", map[string]interface{}{
		"phone": "+40711111111",
	})
	require.Equal(t, http.StatusOK, status)
	code := codePattern.FindString(stack.Notifier.LastSent().Message)
	require.Len(t, code, 6)
	status, _ = stack.request(t, http.MethodPost, "/checkout/verify", "", map[string]interface{}{
		"phone": "+40711111111", "code": code,
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = stack.request(t, http.MethodPost, "/checkout/order", "", map[string]interface{}{
		"session_id": sessionID, "phone": "+40799999999",
	})
	assert.Equal(t, http.StatusForbidden, status)
}
