package cache

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Key builds the cache key for a single entity, e.g. "level:5".
func Key(resource, id string) string {
	return resource + ":" + id
}

// ChildKey builds the key for a child collection scoped under a parent,
// e.g. "calendar:3:events".
func ChildKey(parent, parentID, child string) string {
	return parent + ":" + parentID + ":" + child
}

// ListKey builds the cache key for a list endpoint from its query parameters.
// The query is normalized first so that equivalent queries produce the same
// key regardless of parameter order or string/number representation.
func ListKey(resource string, query url.Values) string {
	return resource + ":" + normalizeQuery(query)
}

// ListPattern matches every list-query variant of a resource collection.
func ListPattern(resource string) string {
	return resource + ":*"
}

// normalizeQuery canonicalizes query parameters into a deterministic JSON
// object: first value per parameter, "true"/"false" coerced to booleans,
// numeric strings coerced to numbers. encoding/json marshals map keys in
// sorted order, which makes the result order-independent.
func normalizeQuery(query url.Values) string {
	normalized := make(map[string]interface{}, len(query))
	for param, values := range query {
		if len(values) == 0 {
			continue
		}
		normalized[param] = coerce(values[0])
	}

	encoded, err := json.Marshal(normalized)
	if err != nil {
		// url.Values only holds strings, bools and numbers after coercion;
		// marshalling cannot fail for those.
		return "{}"
	}
	return string(encoded)
}

func coerce(value string) interface{} {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}
