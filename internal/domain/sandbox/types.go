package sandbox

import "time"

// Config defines sandbox limits.
type Config struct {
	Timeout       time.Duration // invocation timeout
	MaxPasses     int           // bound on the render/effect loop
	EnableConsole bool          // capture console.log/warn/error
}

// DefaultConfig returns the limits used by the previewer.
func DefaultConfig() Config {
	return Config{
		Timeout:       2 * time.Second,
		MaxPasses:     10,
		EnableConsole: true,
	}
}

// FetchResponse is what the in-sandbox fetch binding hands back to the
// previewed component.
type FetchResponse struct {
	Status int
	Body   []byte
}

// FetchFunc issues a request on behalf of sandboxed code. During a preview
// session it goes through the interception layer's ambient client.
type FetchFunc func(path string) (FetchResponse, error)

// LogEntry is one captured console line.
type LogEntry struct {
	Level   string
	Message string
	Time    time.Time
}

// Result holds one invocation's outcome.
type Result struct {
	Value    interface{}   // exported element tree
	Console  []LogEntry    // captured console output
	Passes   int           // render passes until the hook state settled
	Duration time.Duration // invocation time
}
