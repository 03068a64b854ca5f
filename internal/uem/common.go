package uem

import (
	"fmt"
	"hash/fnv"
	"time"
)

var timeNow = time.Now

// SetTimeNowFn replaces the clock used for token expiry and the Date header.
func SetTimeNowFn(f func() time.Time) {
	timeNow = f
}

func RestoreTimeNow() {
	timeNow = time.Now
}

// ComputeKey generates a quick hash of the given string with fixed length.
func ComputeKey(s string) string {
	h := fnv.New32a()
	// hash.Hash.Write never returns an error according to the interface contract
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("t%d", h.Sum32())
}
