package render

import "sync"

// debugSettings holds the process-wide debug visualization mode picked up
// by drawables whose variants were compiled with FlagDebugDisplay.
type debugSettings struct {
	mu   sync.RWMutex
	mode DebugDisplay
}

var globalDebugSettings = &debugSettings{}

// GetDebugDisplay returns the current debug visualization mode.
func GetDebugDisplay() DebugDisplay {
	globalDebugSettings.mu.RLock()
	defer globalDebugSettings.mu.RUnlock()
	return globalDebugSettings.mode
}

// SetDebugDisplay switches the debug visualization mode for all debug
// drawables from the next draw on.
func SetDebugDisplay(mode DebugDisplay) {
	globalDebugSettings.mu.Lock()
	defer globalDebugSettings.mu.Unlock()

	if mode < DebugNone || mode > DebugNormal {
		mode = DebugNone
	}
	globalDebugSettings.mode = mode
}
