package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/RayuduBharani/meetocure-hs/pkg/jwt"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	HospitalIDKey   contextKey = "hospital_id"
	HospitalNameKey contextKey = "hospital_name"
	UserEmailKey    contextKey = "user_email"
	TokenIDKey      contextKey = "token_id"
)

// AccessTokenKey is the Redis key marking a session token as live.
func AccessTokenKey(hospitalID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", hospitalID.String(), tokenID)
}

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Check if token exists in Redis (not revoked)
		exists, err := m.redisClient.Exists(r.Context(), AccessTokenKey(claims.UserID, claims.TokenID)).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token", err)
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := WithSession(r.Context(), claims.UserID, claims.Email, claims.HospitalName, claims.TokenID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSession stores the authenticated hospital session in ctx.
func WithSession(ctx context.Context, hospitalID uuid.UUID, email, hospitalName, tokenID string) context.Context {
	ctx = context.WithValue(ctx, HospitalIDKey, hospitalID)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, HospitalNameKey, hospitalName)
	ctx = context.WithValue(ctx, TokenIDKey, tokenID)
	return ctx
}

// GetHospitalIDFromContext extracts the session's hospital ID from context
func GetHospitalIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(HospitalIDKey).(uuid.UUID)
	return id, ok
}

// GetHospitalNameFromContext extracts the session's hospital name from context
func GetHospitalNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(HospitalNameKey).(string)
	return name, ok
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// HospitalActor returns the session hospital ID for audit rows, or nil outside a session.
func HospitalActor(ctx context.Context) *uuid.UUID {
	id, ok := GetHospitalIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &id
}
