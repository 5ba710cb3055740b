package postgres

// SQL for event and snapshot storage. All windows are half-open:
// occurred_at >= start AND occurred_at < end.

const (
	queryInsertEvent = `
		INSERT INTO query_events (occurred_at, path, route, ms, source, hour_of_day)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	queryCountInWindow = `
		SELECT COUNT(*)
		FROM query_events
		WHERE occurred_at >= $1 AND occurred_at < $2
	`

	// queryAverageLatency casts to numeric(12,3) to match the precision of
	// the snapshot avg_ms column. COALESCE covers the empty window.
	queryAverageLatency = `
		SELECT COALESCE(AVG(ms)::numeric(12,3), 0)
		FROM query_events
		WHERE occurred_at >= $1 AND occurred_at < $2
	`

	// queryTopRoutes breaks count ties by route name so repeated rollups of
	// the same window produce identical orderings.
	queryTopRoutes = `
		SELECT route, COUNT(*) AS route_count
		FROM query_events
		WHERE occurred_at >= $1 AND occurred_at < $2
		GROUP BY route
		ORDER BY route_count DESC, route ASC
		LIMIT $3
	`

	// queryBusiestHour breaks ties toward the smaller hour.
	queryBusiestHour = `
		SELECT hour_of_day, COUNT(*) AS hour_count
		FROM query_events
		WHERE occurred_at >= $1 AND occurred_at < $2
		GROUP BY hour_of_day
		ORDER BY hour_count DESC, hour_of_day ASC
		LIMIT 1
	`

	queryEarliestEventTime = `SELECT MIN(occurred_at) FROM query_events`

	querySaveSnapshot = `
		INSERT INTO stats_snapshots (
			computed_at, window_start, window_end, sample_size,
			avg_ms, popular_hour, popular_hour_count, top_queries
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	// queryLatestSnapshot orders by id as well so two snapshots computed in
	// the same instant resolve deterministically.
	queryLatestSnapshot = `
		SELECT
			id, computed_at, window_start, window_end, sample_size,
			avg_ms, popular_hour, popular_hour_count, top_queries
		FROM stats_snapshots
		ORDER BY computed_at DESC, id DESC
		LIMIT 1
	`
)
