package cache

import (
	"context"
	"fmt"
)

// scanPageSize is the SCAN count hint passed to the store per page.
const scanPageSize = 100

// Invalidate deletes every cached key matching any of the given glob
// patterns (an exact key is a pattern without wildcards). All patterns are
// scanned to cursor exhaustion before a single batched delete is issued, and
// overlapping patterns are deduplicated so each key is deleted once.
//
// Unlike cache reads, failures here propagate to the caller: a stale entry
// surviving a write would serve deleted or outdated data, which is a
// correctness bug rather than a performance miss. Keys written between the
// scan and the delete can be missed; that window is accepted as eventual
// consistency.
func Invalidate(ctx context.Context, store Store, patterns ...string) (int64, error) {
	matched := make(map[string]struct{})

	for _, pattern := range patterns {
		var cursor uint64
		for {
			keys, next, err := store.Scan(ctx, cursor, pattern, scanPageSize)
			if err != nil {
				return 0, fmt.Errorf("scan pattern %q: %w", pattern, err)
			}
			for _, key := range keys {
				matched[key] = struct{}{}
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}

	if len(matched) == 0 {
		return 0, nil
	}

	union := make([]string, 0, len(matched))
	for key := range matched {
		union = append(union, key)
	}

	deleted, err := store.Delete(ctx, union...)
	if err != nil {
		return 0, fmt.Errorf("delete %d matched keys: %w", len(union), err)
	}
	return deleted, nil
}
