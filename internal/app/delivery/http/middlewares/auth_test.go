package middlewares

import (
	"caredesk-service/internal/app/config"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOperatorAuth(t *testing.T) {
	logger := zap.NewNop()

	testSecret := "test-jwt-secret-12345"
	internalConfig := &config.InternalConfig{
		JWT: config.JWT{
			Secret: testSecret,
		},
	}

	middlewares := &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operatorID, ok := r.Context().Value(constvars.ContextOperatorIDKey).(string)
		assert.True(t, ok, "operator id should be set in context")
		assert.Equal(t, "operator-7", operatorID)

		operatorName, ok := r.Context().Value(constvars.ContextOperatorNameKey).(string)
		assert.True(t, ok, "operator name should be set in context")
		assert.Equal(t, "Dana Reyes", operatorName)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid Token", func(t *testing.T) {
		token, err := utils.GenerateOperatorJWT("operator-7", "Dana Reyes", testSecret, 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/visits/visit-001/checkout", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		handler := middlewares.OperatorAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for a valid token")
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing Authorization Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/visits/visit-001/checkout", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.OperatorAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized without a token")
	})

	t.Run("Malformed Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/visits/visit-001/checkout", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")

		rr := httptest.NewRecorder()
		handler := middlewares.OperatorAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token Signed With Wrong Secret", func(t *testing.T) {
		token, err := utils.GenerateOperatorJWT("operator-7", "Dana Reyes", "a-different-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/visits/visit-001/checkout", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		handler := middlewares.OperatorAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token Without Operator Identity", func(t *testing.T) {
		token, err := utils.GenerateOperatorJWT("", "Dana Reyes", testSecret, 1)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/visits/visit-001/checkout", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		handler := middlewares.OperatorAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "a token missing operator_id should be rejected")
	})
}
