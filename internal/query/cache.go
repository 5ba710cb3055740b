package query

import (
	"fmt"
	"time"

	"github.com/querystats-lab/querystats/internal/core/stats"
)

// noSnapshotDirective tells caches there is nothing worth holding on to yet.
const noSnapshotDirective = "public, max-age=0, s-maxage=0, stale-while-revalidate=0, stale-if-error=0"

// CacheControl derives the Cache-Control value for a response built from the
// given snapshot. Freshness decays with snapshot age: a response is cacheable
// until the next rollup is expected, and may be served on upstream errors for
// half the rollup interval.
func CacheControl(snapshot *stats.Snapshot, now time.Time, interval time.Duration) string {
	if snapshot == nil {
		return noSnapshotDirective
	}

	intervalSeconds := int64(interval.Seconds())
	ageSeconds := int64(snapshot.Age(now).Seconds())

	maxAge := intervalSeconds - ageSeconds
	if maxAge < 0 {
		maxAge = 0
	}
	staleIfError := intervalSeconds / 2

	return fmt.Sprintf("public, max-age=%d, s-maxage=%d, stale-while-revalidate=0, stale-if-error=%d",
		maxAge, maxAge, staleIfError)
}
