package models

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Entity ID prefixes.
const (
	DossierIDPrefix  = "DOS"
	DocumentIDPrefix = "DOC"
	ImageIDPrefix    = "IMG"
)

var lastIDMillis atomic.Int64

// NewID returns a time-based identifier of the form "<prefix>-<unixmillis>".
// The millisecond value is kept strictly increasing within the process so
// that two creations in the same millisecond cannot collide.
func NewID(prefix string) string {
	now := time.Now().UnixMilli()
	for {
		last := lastIDMillis.Load()
		if now <= last {
			now = last + 1
		}
		if lastIDMillis.CompareAndSwap(last, now) {
			break
		}
	}
	return prefix + "-" + strconv.FormatInt(now, 10)
}
