package utils

import (
	"caredesk-service/internal/pkg/constvars"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateTransactionID() string {
	return uuid.NewString()
}

// GenerateIdempotencyKey derives the commit idempotency key from the visit id
// so retries of the same visit checkout always collide on the same key.
func GenerateIdempotencyKey(visitID string) string {
	return fmt.Sprintf(constvars.IdempotencyKeyFormat, visitID)
}

func GenerateSignatureObjectName(visitID, fileExtension string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s_%s_%s%s", constvars.SignatureObjectPrefix, visitID, timestamp, fileExtension)
}

// ParseOperatorJWT validates an operator token and returns its identity
// claims. Only HS256 tokens minted by GenerateOperatorJWT are accepted.
func ParseOperatorJWT(tokenString, secret string) (operatorID, operatorName string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid token claims")
	}

	operatorID, _ = claims["operator_id"].(string)
	operatorName, _ = claims["operator_name"].(string)
	if operatorID == "" {
		return "", "", fmt.Errorf("token has no operator identity")
	}
	return operatorID, operatorName, nil
}

func GenerateOperatorJWT(operatorID, operatorName, secret string, jwtExpiryTimeInHours int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"operator_id":   operatorID,
		"operator_name": operatorName,
		"exp":           time.Now().Add(time.Duration(jwtExpiryTimeInHours) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
