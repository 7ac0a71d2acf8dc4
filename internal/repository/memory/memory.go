// Package memory holds map-backed repositories. They honor the same uniqueness and
// conditional-write rules as the PostgreSQL ones and back both tests and STORAGE_DRIVER=memory.
package memory

import (
	"time"

	"github.com/google/uuid"
)

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func now() time.Time {
	return time.Now().UTC()
}

// paginate returns the bounds of page (1-based) of size limit over n items.
func paginate(n, page, limit int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start > n {
		start = n
	}
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}
