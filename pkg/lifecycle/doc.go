// Package lifecycle provides retry helpers for long-running loops.
//
// # Backoff
//
// Backoff implements exponential backoff with jitter. Each call to Next
// returns the current delay (randomized by up to 20% either way) and doubles
// it, capped at the configured maximum. Reset returns to the initial delay
// after a success:
//
//	b := lifecycle.NewBackoff(50*time.Millisecond, 2*time.Second)
//	for {
//	    conn, err := ln.Accept()
//	    if err != nil {
//	        if b.SleepContext(ctx) != nil {
//	            return
//	        }
//	        continue
//	    }
//	    b.Reset()
//	    // ...
//	}
package lifecycle
