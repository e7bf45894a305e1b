package utils

import (
	"log"
	"time"
)

// GoSafe runs fn in a goroutine, recovering and logging any panic so a
// misbehaving background task cannot take the process down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic in goroutine: %v", r)
			}
		}()
		fn()
	}()
}

// SameCalendarDay reports whether a and b fall on the same calendar day
// in their respective locations.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
