package middleware

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"student_admin_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour

	ContextAdminID = "adminID"
)

var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// AuthMiddleware creates a gin middleware for JWT authentication
func AuthMiddleware(jwtSecret []byte, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header must be in the format: Bearer {token}"})
			return
		}

		claims, err := ParseAccessToken(jwtSecret, parts[1])
		if err != nil {
			logger.Debug("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Next()
	}
}

// ParseAccessToken verifies an HS256 access token and returns its claims.
func ParseAccessToken(jwtSecret []byte, tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.AdminID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// TokenService handles token generation and validation
type TokenService struct {
	DB        *sqlx.DB
	JWTSecret []byte
	now       func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(db *sqlx.DB, jwtSecret []byte) *TokenService {
	return &TokenService{
		DB:        db,
		JWTSecret: jwtSecret,
		now:       time.Now,
	}
}

// GenerateTokens creates a new access and refresh token pair
func (s *TokenService) GenerateTokens(ctx context.Context, adminID string) (models.TokenPair, error) {
	now := s.now()
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	accessTokenString, err := accessToken.SignedString(s.JWTSecret)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error signing access token: %w", err)
	}

	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return models.TokenPair{}, err
	}
	refreshToken := hex.EncodeToString(bytes)

	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO refresh_tokens (admin_id, token, expires_at) VALUES ($1, $2, $3)`,
		adminID, refreshToken, now.Add(refreshTokenTTL),
	); err != nil {
		return models.TokenPair{}, fmt.Errorf("error storing refresh token: %w", err)
	}

	return models.TokenPair{AccessToken: accessTokenString, RefreshToken: refreshToken}, nil
}

// ValidateRefreshToken checks if a refresh token is valid and returns the admin ID
func (s *TokenService) ValidateRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	var adminID string
	err := s.DB.GetContext(ctx, &adminID,
		`SELECT admin_id FROM refresh_tokens WHERE token = $1 AND expires_at > NOW()`,
		refreshToken,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidRefreshToken
	}
	if err != nil {
		return "", err
	}
	return adminID, nil
}

// InvalidateRefreshToken invalidates a refresh token
func (s *TokenService) InvalidateRefreshToken(ctx context.Context, refreshToken string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, refreshToken)
	return err
}

// VerifyPassword checks if a password matches the hashed version
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword creates a bcrypt hash of a password
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
