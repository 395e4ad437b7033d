package cache

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "level:5", Key("level", "5"))
	assert.Equal(t, "user:a1b2", Key("user", "a1b2"))
}

func TestChildKey(t *testing.T) {
	assert.Equal(t, "calendar:3:events", ChildKey("calendar", "3", "events"))
	assert.Equal(t, "student:s1:behavior-reports", ChildKey("student", "s1", "behavior-reports"))
}

func TestListPattern(t *testing.T) {
	assert.Equal(t, "levels:*", ListPattern("levels"))
}

func TestListKey_ParameterOrderIndependent(t *testing.T) {
	a := url.Values{}
	a.Set("page", "1")
	a.Set("limit", "10")

	b := url.Values{}
	b.Set("limit", "10")
	b.Set("page", "1")

	assert.Equal(t, ListKey("levels", a), ListKey("levels", b))
}

func TestListKey_TypeCoercion(t *testing.T) {
	testCases := []struct {
		name     string
		query    url.Values
		expected string
	}{
		{
			name:     "numeric strings become numbers",
			query:    url.Values{"page": {"2"}, "limit": {"20"}},
			expected: `levels:{"limit":20,"page":2}`,
		},
		{
			name:     "booleans coerced",
			query:    url.Values{"fetchAll": {"true"}},
			expected: `levels:{"fetchAll":true}`,
		},
		{
			name:     "plain strings preserved",
			query:    url.Values{"search": {"grade"}},
			expected: `levels:{"search":"grade"}`,
		},
		{
			name:     "empty query",
			query:    url.Values{},
			expected: "levels:{}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ListKey("levels", tc.query))
		})
	}
}

func TestListKey_FirstValueWins(t *testing.T) {
	query := url.Values{"search": {"math", "science"}}
	assert.Equal(t, `courses:{"search":"math"}`, ListKey("courses", query))
}

func TestListKey_DistinctQueriesDistinctKeys(t *testing.T) {
	a := url.Values{"page": {"1"}}
	b := url.Values{"page": {"2"}}
	assert.NotEqual(t, ListKey("levels", a), ListKey("levels", b))
}
