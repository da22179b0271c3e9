package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

// FormatRateLimitKey builds the counter key for one caller on one route
// class. scope is "read" or "write", caller is "user:<id>" or "ip:<addr>".
func FormatRateLimitKey(scope string, caller string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, caller)
}
