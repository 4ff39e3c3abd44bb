package middlewares

import (
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/utils"
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// OperatorAuth gates every front-desk endpoint behind a bearer token and puts
// the operator identity on the request context so mutations are attributable.
func (m *Middlewares) OperatorAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(fmt.Errorf("missing Authorization header")))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		operatorID, operatorName, err := utils.ParseOperatorJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			requestID, _ := r.Context().Value(constvars.ContextRequestIDKey).(string)
			m.Log.Info("middlewares.OperatorAuth rejected token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.ContextOperatorIDKey, operatorID)
		ctx = context.WithValue(ctx, constvars.ContextOperatorNameKey, operatorName)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
