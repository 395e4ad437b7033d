package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims represents the JWT claims structure
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService handles JWT operations
type JWTService struct {
	secretKey string
}

func NewJWTService(secretKey string) *JWTService {
	return &JWTService{secretKey: secretKey}
}

const tokenLifetime = time.Hour

// GenerateToken issues a bearer token carrying the user's identity and role.
func (j *JWTService) GenerateToken(user *model.User) (string, error) {
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ValidateToken validates a JWT token and returns the claims
func (j *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}

// AuthMiddleware is a Gin middleware for JWT authentication
func AuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RequireRoles restricts a route to the listed roles. It assumes
// AuthMiddleware already ran.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString("user_role")
		if _, ok := allowed[role]; !ok {
			c.JSON(http.StatusForbidden, model.ErrorResponse{
				Error:   "forbidden",
				Message: "You do not have permission to perform this action",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CORSMiddleware handles CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("%s | %s %s | %d | %s",
			c.ClientIP(), c.Request.Method, path, c.Writer.Status(), latency)
	}
}

// ===============================
// Read-through cache
// ===============================

// cacheKeyContext is where the read middleware stashes the computed key for
// the handler to populate on a miss.
const cacheKeyContext = "cache_key"

// CacheRead serves GET requests from the cache when possible. On a hit the
// cached payload is returned directly and the handler never runs; the entry's
// TTL is refreshed on access. On a miss (or any store error, which is treated
// as a miss) the computed key is stashed in the context and the chain
// continues; respondCached populates it.
func CacheRead(store cache.Store, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		payload, err := store.Get(c.Request.Context(), key)
		if err != nil {
			log.Printf("cache read failed for %q, falling through: %v", key, err)
		}
		if payload != nil {
			if err := store.Expire(c.Request.Context(), key, cache.DefaultTTL); err != nil {
				log.Printf("cache ttl refresh failed for %q: %v", key, err)
			}
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			c.Abort()
			return
		}

		c.Set(cacheKeyContext, key)
		c.Next()
	}
}

// respondCached writes the authoritative 200 response and, when the read
// middleware left a key behind, stores the payload under it. Key
// construction lives entirely in the cache package and the middleware, so
// read keys and invalidation patterns cannot drift apart.
func respondCached(c *gin.Context, store cache.Store, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		handleError(c, fmt.Errorf("failed to encode response: %w", err))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)

	if key, ok := c.Get(cacheKeyContext); ok {
		if err := store.Set(c.Request.Context(), key.(string), data, cache.DefaultTTL); err != nil {
			log.Printf("cache populate failed for %q: %v", key, err)
		}
	}
}

// invalidateOrAbort deletes the cache entries matching the given patterns
// after a successful write. Unlike reads, failures here abort the request:
// a stale entry surviving a write would serve incorrect data.
func invalidateOrAbort(c *gin.Context, store cache.Store, patterns ...string) bool {
	if _, err := cache.Invalidate(c.Request.Context(), store, patterns...); err != nil {
		handleError(c, fmt.Errorf("cache invalidation failed: %w", err))
		return false
	}
	return true
}

// ===============================
// Query parsing
// ===============================

// parseListFilter extracts the shared pagination/search parameters.
func parseListFilter(c *gin.Context) model.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	search := c.Query("search")
	if search == "" {
		search = c.Query("searchQuery")
	}

	return model.ListFilter{
		Page:     page,
		Limit:    limit,
		FetchAll: c.Query("fetchAll") == "true",
		Search:   search,
	}
}

// entityKeyFn builds a cache-key function for single-entity GET routes.
func entityKeyFn(resource string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return cache.Key(resource, c.Param("id"))
	}
}

// listKeyFn builds a cache-key function for collection GET routes.
func listKeyFn(resource string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return cache.ListKey(resource, c.Request.URL.Query())
	}
}

// childListKeyFn builds a cache-key function for nested collection routes,
// e.g. /students/:id/former-schools.
func childListKeyFn(parent, child string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return cache.ListKey(cache.ChildKey(parent, c.Param("id"), child), c.Request.URL.Query())
	}
}
