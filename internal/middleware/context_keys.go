package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// operatorIDKey is the key under which the calling operator's identifier is
// stored. Authentication is handled upstream of this service; the operator
// identity arrives on a trusted header and is used for audit fields and
// analytics attribution only.
const operatorIDKey = contextKey("operatorID")

// OperatorHeader is the request header carrying the operator identifier.
const OperatorHeader = "X-Operator-ID"

// OperatorContext copies the operator header into the Gin context and the
// request context so handlers and services can attribute writes.
func OperatorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		operatorID := c.GetHeader(OperatorHeader)
		if operatorID != "" {
			c.Set(string(operatorIDKey), operatorID)
			ctx := context.WithValue(c.Request.Context(), operatorIDKey, operatorID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetOperatorIDFromContext retrieves the operator ID from the Gin context.
// It returns the ID and a boolean indicating if it was present.
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	operatorVal, exists := c.Get(string(operatorIDKey))
	if !exists {
		if v := c.Request.Context().Value(operatorIDKey); v != nil {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
		return "", false
	}

	operatorID, ok := operatorVal.(string)
	if !ok {
		return "", false
	}
	return operatorID, true
}
