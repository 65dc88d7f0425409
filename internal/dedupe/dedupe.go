package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent read-side queries. Using a centralized singleflight.Group
// ensures that only one query runs for a given key while other callers wait
// for the same result.

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates leaderboard queries keyed by the limit.
var LeaderboardGroup singleflight.Group

// ProfileGroup deduplicates trainer profile lookups keyed by profile key.
var ProfileGroup singleflight.Group
