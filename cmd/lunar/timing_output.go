package main

import (
	"fmt"
	"io"

	"lunar/internal/observ"
)

// printTimings writes the timer summary to out; a nil timer
// prints nothing.
func printTimings(out io.Writer, timer *observ.Timer) {
	if timer == nil || out == nil {
		return
	}
	if err := timer.Write(out, false); err != nil {
		fmt.Fprintf(out, "timings: %v\n", err)
	}
}
