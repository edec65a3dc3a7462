// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, int](100, nil)
//	c.Set("key", 42)
//	v, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
