package cache

import "fmt"

const rateLimitKeyPrefix = "videotube:rl:%s:%s"

// RateLimitKey names the counter for one caller on one resource.
func RateLimitKey(resource, caller string) string {
	return fmt.Sprintf(rateLimitKeyPrefix, resource, caller)
}
