package vipbot

import "time"

// DefaultRefreshInterval is how often the revision marker is polled.
const DefaultRefreshInterval = 5 * time.Minute

// RefreshResult reports the outcome of one refresh cycle.
type RefreshResult struct {
	// Checked is true when the revision marker was retrieved.
	Checked bool
	// Fetched is true when the dataset was downloaded and parsed.
	Fetched bool
	// Adopted is true when the parsed snapshot replaced the cached one.
	Adopted bool
	// Bootstrap is true when the fetch was forced by an empty cache.
	Bootstrap bool

	Revision string
	Products int
	FAQ      int
	Warnings []*ParseWarning
}

// RefreshStatus describes the refresh loop for status reporting.
type RefreshStatus struct {
	Running     bool          `json:"running"`
	Interval    time.Duration `json:"interval"`
	Cycles      int           `json:"cycles"`
	LastCheck   time.Time     `json:"lastCheck"`
	LastLatency time.Duration `json:"lastLatency"`
	LastError   string        `json:"lastError,omitempty"`
}

// RefreshMonitor exposes the state of the refresh loop.
type RefreshMonitor interface {
	Status() RefreshStatus
}
