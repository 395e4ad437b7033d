package cache

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store for exercising Invalidate without Redis.
type fakeStore struct {
	keys map[string][]byte

	// pageSize caps keys returned per Scan call, forcing cursor paging.
	pageSize int
	scanErr  error

	deleteCalls [][]string
	deleteErr   error
}

func newFakeStore(keys ...string) *fakeStore {
	s := &fakeStore{keys: make(map[string][]byte), pageSize: 1000}
	for _, k := range keys {
		s.keys[k] = []byte("{}")
	}
	return s
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.keys[key], nil
}

func (s *fakeStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.keys[key] = value
	return nil
}

func (s *fakeStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, keys ...string) (int64, error) {
	s.deleteCalls = append(s.deleteCalls, keys)
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	var deleted int64
	for _, k := range keys {
		if _, ok := s.keys[k]; ok {
			delete(s.keys, k)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakeStore) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	if s.scanErr != nil {
		return nil, 0, s.scanErr
	}

	var matched []string
	for k := range s.keys {
		if globMatch(pattern, k) {
			matched = append(matched, k)
		}
	}
	sort.Strings(matched)

	start := int(cursor)
	if start >= len(matched) {
		return nil, 0, nil
	}
	end := start + s.pageSize
	if end >= len(matched) {
		return matched[start:], 0, nil
	}
	return matched[start:end], uint64(end), nil
}

func (s *fakeStore) Ping(ctx context.Context) error { return nil }

func (s *fakeStore) Close() error { return nil }

// globMatch handles the two pattern shapes the key scheme produces: exact
// keys and prefix wildcards like "levels:*".
func globMatch(pattern, key string) bool {
	if i := strings.IndexByte(pattern, '*'); i >= 0 {
		return strings.HasPrefix(key, pattern[:i])
	}
	return pattern == key
}

func TestInvalidate_DeletesMatchesInOneBatch(t *testing.T) {
	store := newFakeStore("a:1", "a:2", "a:99", "b:1")

	deleted, err := Invalidate(context.Background(), store, "a:1", "a:*")

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.Len(t, store.deleteCalls, 1, "all matched keys should be deleted in a single batch")
	assert.ElementsMatch(t, []string{"a:1", "a:2", "a:99"}, store.deleteCalls[0])
	assert.Contains(t, store.keys, "b:1")
}

func TestInvalidate_DeduplicatesOverlappingPatterns(t *testing.T) {
	store := newFakeStore("level:5", "levels:{}")

	deleted, err := Invalidate(context.Background(), store, "level:5", "level*")

	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	require.Len(t, store.deleteCalls, 1)
	assert.ElementsMatch(t, []string{"level:5", "levels:{}"}, store.deleteCalls[0])
}

func TestInvalidate_NoMatches(t *testing.T) {
	store := newFakeStore("b:1")

	deleted, err := Invalidate(context.Background(), store, "a:*")

	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.Empty(t, store.deleteCalls, "no delete should be issued when nothing matched")
}

func TestInvalidate_WalksCursorToExhaustion(t *testing.T) {
	store := newFakeStore("a:1", "a:2", "a:3", "a:4", "a:5")
	store.pageSize = 2

	deleted, err := Invalidate(context.Background(), store, "a:*")

	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}

func TestInvalidate_ScanErrorPropagates(t *testing.T) {
	store := newFakeStore("a:1")
	store.scanErr = errors.New("connection refused")

	deleted, err := Invalidate(context.Background(), store, "a:*")

	assert.Error(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.Empty(t, store.deleteCalls)
}

func TestInvalidate_DeleteErrorPropagates(t *testing.T) {
	store := newFakeStore("a:1")
	store.deleteErr = errors.New("connection refused")

	_, err := Invalidate(context.Background(), store, "a:*")

	assert.Error(t, err)
}
