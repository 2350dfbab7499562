// Package cache provides a Redis-backed response cache for the users API.
//
// The cache manager stores whole HTTP responses keyed by endpoint and
// query parameters:
//
//   - Deterministic cache key generation
//   - TTL from the server Expires header, with a configurable fallback
//   - Automatic eviction via Redis key TTLs
//   - Prometheus metrics for observability
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{Endpoint: "/users/3"}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// Cache miss - fetch from the API
//	}
//
// # HTTP Response Caching
//
//	entry, err := cache.ResponseToEntry(resp, 60*time.Second)
//	if err != nil {
//		return err
//	}
//
//	if err := manager.Set(ctx, key, entry); err != nil {
//		return err
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - fetch_cache_hits_total{layer="redis"} - Cache hits
//   - fetch_cache_misses_total - Cache misses
//   - fetch_cache_size_bytes{layer="redis"} - Cache size
//   - fetch_cache_errors_total{operation} - Cache operation errors
package cache
