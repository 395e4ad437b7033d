package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore is an in-memory cache.Store for middleware tests.
type memStore struct {
	data    map[string][]byte
	expired map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte), expired: make(map[string]time.Duration)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	s.expired[key] = ttl
	return nil
}

func (s *memStore) Delete(ctx context.Context, keys ...string) (int64, error) {
	var deleted int64
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memStore) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	prefix := pattern
	if i := strings.IndexByte(pattern, '*'); i >= 0 {
		prefix = pattern[:i]
	}
	var keys []string
	for k := range s.data {
		if pattern == k || (prefix != pattern && strings.HasPrefix(k, prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, 0, nil
}

func (s *memStore) Ping(ctx context.Context) error { return nil }

func (s *memStore) Close() error { return nil }

func TestCacheRead_HitShortCircuitsHandler(t *testing.T) {
	store := newMemStore()
	key := cache.Key("level", "5")
	store.data[key] = []byte(`{"level_id":"5"}`)

	handlerHits := 0
	r := gin.New()
	r.GET("/levels/:id", CacheRead(store, entityKeyFn("level")), func(c *gin.Context) {
		handlerHits++
		respondCached(c, store, gin.H{"level_id": c.Param("id")})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/levels/5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"level_id":"5"}`, w.Body.String())
	assert.Equal(t, 0, handlerHits, "handler must not run on a cache hit")
	assert.Equal(t, cache.DefaultTTL, store.expired[key], "hit should refresh the entry's TTL")
}

func TestCacheRead_MissRunsHandlerAndPopulates(t *testing.T) {
	store := newMemStore()

	handlerHits := 0
	r := gin.New()
	r.GET("/levels/:id", CacheRead(store, entityKeyFn("level")), func(c *gin.Context) {
		handlerHits++
		respondCached(c, store, gin.H{"level_id": c.Param("id")})
	})

	// First request misses and populates
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels/7", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, handlerHits)
	assert.Contains(t, store.data, cache.Key("level", "7"))

	// Second request is served from the cache
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels/7", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"level_id":"7"}`, w.Body.String())
	assert.Equal(t, 1, handlerHits, "second read should come from the cache")
}

func TestCacheRead_InvalidationForcesRefetch(t *testing.T) {
	store := newMemStore()

	handlerHits := 0
	r := gin.New()
	r.GET("/levels", CacheRead(store, listKeyFn("levels")), func(c *gin.Context) {
		handlerHits++
		respondCached(c, store, gin.H{"levels": []string{}})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels?page=1", nil))
	require.Equal(t, 1, handlerHits)

	// Simulate a write invalidating the collection
	deleted, err := cache.Invalidate(context.Background(), store, cache.ListPattern("levels"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels?page=1", nil))
	assert.Equal(t, 2, handlerHits, "invalidated entry must be refetched from the handler")
}

func TestCacheRead_ListKeyVariantsCachedSeparately(t *testing.T) {
	store := newMemStore()

	handlerHits := 0
	r := gin.New()
	r.GET("/levels", CacheRead(store, listKeyFn("levels")), func(c *gin.Context) {
		handlerHits++
		respondCached(c, store, gin.H{"page": c.Query("page")})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels?page=1", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels?page=2", nil))
	assert.Equal(t, 2, handlerHits)

	// Same query again hits the cache
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels?page=2", nil))
	assert.Equal(t, 2, handlerHits)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	user := &model.User{ID: "u1", Email: "admin@school.test", Role: model.RoleAdmin}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin@school.test", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken(&model.User{ID: "u1", Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthMiddleware_And_RequireRoles(t *testing.T) {
	svc := NewJWTService("test-secret")

	r := gin.New()
	r.GET("/admin-only", AuthMiddleware(svc), RequireRoles(model.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	testCases := []struct {
		name     string
		header   string
		expected int
	}{
		{name: "missing header", header: "", expected: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", expected: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", expected: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.expected, w.Code)
		})
	}

	t.Run("wrong role is forbidden", func(t *testing.T) {
		token, err := svc.GenerateToken(&model.User{ID: "s1", Role: model.RoleStudent})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("matching role passes", func(t *testing.T) {
		token, err := svc.GenerateToken(&model.User{ID: "a1", Role: model.RoleAdmin})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"a1"}`, w.Body.String())
	})
}

func TestParseListFilter(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected model.ListFilter
	}{
		{
			name:     "defaults",
			query:    "",
			expected: model.ListFilter{Page: 1, Limit: 20},
		},
		{
			name:     "explicit values",
			query:    "page=3&limit=50&search=math",
			expected: model.ListFilter{Page: 3, Limit: 50, Search: "math"},
		},
		{
			name:     "limit clamped to 100",
			query:    "limit=500",
			expected: model.ListFilter{Page: 1, Limit: 100},
		},
		{
			name:     "negative page normalized",
			query:    "page=-2",
			expected: model.ListFilter{Page: 1, Limit: 20},
		},
		{
			name:     "searchQuery alias",
			query:    "searchQuery=science",
			expected: model.ListFilter{Page: 1, Limit: 20, Search: "science"},
		},
		{
			name:     "fetch all",
			query:    "fetchAll=true",
			expected: model.ListFilter{Page: 1, Limit: 20, FetchAll: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/anything?"+tc.query, nil)
			assert.Equal(t, tc.expected, parseListFilter(c))
		})
	}
}

func TestChildListKeyFn_ScopedToParent(t *testing.T) {
	keyFn := childListKeyFn("student", "behavior-reports")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/students/s1/behavior-reports?page=1", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	key := keyFn(c)
	assert.Equal(t, cache.ListKey(cache.ChildKey("student", "s1", "behavior-reports"), url.Values{"page": {"1"}}), key)
	assert.True(t, strings.HasPrefix(key, "student:s1:behavior-reports:"))
}
