package kafka

import "time"

var Handle = handle

func SetRetryBackoff(backoff time.Duration) func() {
	previous := retryBackoff
	retryBackoff = backoff

	return func() { retryBackoff = previous }
}
