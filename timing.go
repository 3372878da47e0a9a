// FILE: lixenwraith/looks/timing.go
package looks

import "time"

// Timing constants of the properties file watcher.
const (
	SpinWaitInterval     = 5 * time.Millisecond   // busy-wait quantum while stopping
	MinPollInterval      = 50 * time.Millisecond  // floor for file stat polling
	ShutdownTimeout      = 100 * time.Millisecond // watcher termination window
	DefaultDebounce      = 200 * time.Millisecond // file change coalescence period
	DefaultPollInterval  = time.Second            // standard file monitoring frequency
	DefaultReloadTimeout = 5 * time.Second        // maximum duration of a reload
)
