package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Capability names a permission required for an admin operation. Tokens carry
// either an explicit caps claim or the admin role, which implies every
// capability. Handlers gate on capabilities, never on the raw role string.
type Capability string

const (
	CapOrdersWrite    Capability = "orders:write"
	CapInventoryWrite Capability = "inventory:write"
)

func parseToken(header, secret string) (jwt.MapClaims, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, errors.New("missing token")
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func claimsHaveCapability(claims jwt.MapClaims, cap Capability) bool {
	if role, _ := claims["role"].(string); role == "admin" {
		return true
	}
	caps, _ := claims["caps"].([]interface{})
	for _, c := range caps {
		if s, ok := c.(string); ok && s == string(cap) {
			return true
		}
	}
	return false
}

// RequireCapability validates the bearer token and rejects callers whose
// token does not grant the capability.
func RequireCapability(secret string, cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c.GetHeader("Authorization"), secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token rejected:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !claimsHaveCapability(claims, cap) {
			log.Printf("[AUTH] [ERROR] capability %s denied", cap)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func userIDFromClaims(claims jwt.MapClaims) (primitive.ObjectID, error) {
	value, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return primitive.NilObjectID, errors.New("userId claim missing")
	}
	return primitive.ObjectIDFromHex(value)
}

// UserAuth validates user tokens and injects the userId into the context.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c.GetHeader("Authorization"), secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token rejected:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := userIDFromClaims(claims)
		if err != nil {
			log.Println("[AUTH] [ERROR]", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

// OptionalUser resolves the userId when a valid token is present and lets
// anonymous requests through. Checkout uses it: guests may order, but a
// malformed token is still rejected rather than silently downgraded to guest.
func OptionalUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}

		claims, err := parseToken(c.GetHeader("Authorization"), secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token rejected:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := userIDFromClaims(claims)
		if err != nil {
			log.Println("[AUTH] [ERROR]", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}
