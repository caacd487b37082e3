package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Fyyrerde4xhsj/TapNow/database"
	"github.com/Fyyrerde4xhsj/TapNow/models"
)

// RedisClient is an optional shared Redis client used to blacklist revoked
// access-token JTIs across processes. Nil when REDIS_ADDR is not configured;
// revocation then falls back to the revoked_tokens table.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		return
	}
	RedisClient = rc
}

type contextKey string

const UserIDKey = contextKey("userID")
const RequestIDKey = contextKey("requestID")

// GenerateAccessToken issues a short-lived HS256 access token for the user.
func GenerateAccessToken(userID uint, expiry time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"id":  userID,
		"exp": now.Add(expiry).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": jti,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken creates an opaque refresh token, stores it in the DB
// and returns its id.
func GenerateRefreshToken(userID uint) (string, error) {
	if database.DB == nil {
		return "", errors.New("database not initialized")
	}
	rt, err := models.NewRefreshToken(userID, 7)
	if err != nil {
		return "", err
	}
	if err := database.DB.Create(rt).Error; err != nil {
		return "", err
	}
	return rt.ID, nil
}

// ValidateAccessToken parses the token, enforcing HS256 and registered
// claims, and checks the JTI against the revocation store.
func ValidateAccessToken(tokenStr string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return nil, errors.New("token expired")
		}
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	if jti, ok := claims["jti"].(string); ok && jti != "" && isJTIRevoked(jti) {
		return nil, errors.New("token revoked")
	}
	return claims, nil
}

func isJTIRevoked(jti string) bool {
	if RedisClient != nil {
		res, err := RedisClient.Get(context.Background(), "jwt:blacklist:"+jti).Result()
		// Ignore redis errors: an outage must not lock everyone out.
		return err == nil && res == "1"
	}
	if database.DB != nil {
		var rec struct {
			ID string `gorm:"primaryKey"`
		}
		err := database.DB.Table("revoked_tokens").Where("id = ?", jti).First(&rec).Error
		return err == nil
	}
	return false
}

// RevokeJTI blacklists an access-token JTI until its natural expiry.
func RevokeJTI(jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if RedisClient != nil {
		return RedisClient.Set(context.Background(), "jwt:blacklist:"+jti, "1", ttl).Err()
	}
	if database.DB != nil {
		res := database.DB.Exec("INSERT INTO revoked_tokens (id, revoked_at) VALUES (?, ?)", jti, time.Now())
		return res.Error
	}
	return errors.New("no revocation store configured")
}

// ValidateRefreshToken checks that a refresh token exists, is not revoked and
// has not expired.
func ValidateRefreshToken(id string) (*models.RefreshToken, error) {
	if database.DB == nil {
		return nil, errors.New("database not initialized")
	}
	var rt models.RefreshToken
	if err := database.DB.Where("id = ?", id).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, err
	}
	if rt.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}
	return &rt, nil
}

// UserIDFromClaims extracts the user id claim, tolerating the numeric types
// encoding/json may produce.
func UserIDFromClaims(claims jwt.MapClaims) (uint, bool) {
	rawID, ok := claims["id"]
	if !ok {
		return 0, false
	}
	switch v := rawID.(type) {
	case float64:
		return uint(v), true
	case int:
		return uint(v), true
	case string:
		var n uint
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// GetUserID returns the authenticated user id the auth middleware placed in
// the request context.
func GetUserID(r *http.Request) (uint, bool) {
	v := r.Context().Value(UserIDKey)
	id, ok := v.(uint)
	return id, ok
}

func generateJTI(n int) (string, error) {
	return randomHex(n)
}
