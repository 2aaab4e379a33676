package redis

import "fmt"

// Key prefix for all registry data
const keyPrefix = "lobbyreg"

// channelKey returns the default pub/sub channel for events
func channelKey() string {
	return fmt.Sprintf("%s:events", keyPrefix)
}

// historyKey returns the Redis key for the LIST of recent events on a channel
func historyKey(channel string) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, channel)
}
