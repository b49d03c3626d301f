package model

import "time"

// Meta describes one snapshot run, shown in the header banner and carried
// into structured exports.
type Meta struct {
	Timestamp        time.Time `json:"timestamp" yaml:"timestamp"`
	Hostname         string    `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Kernel           string    `json:"kernel,omitempty" yaml:"kernel,omitempty"`
	TotalProcesses   int       `json:"totalProcesses" yaml:"totalProcesses"`
	CollectionErrors int       `json:"collectionErrors" yaml:"collectionErrors"`
}

// Stats aggregates per-snapshot numbers for the --stats view.
type Stats struct {
	Processes     int    `json:"processes" yaml:"processes"`
	Roots         int    `json:"roots" yaml:"roots"`
	TotalMemoryKB uint64 `json:"totalMemoryKB" yaml:"totalMemoryKB"`
	TotalThreads  int    `json:"totalThreads" yaml:"totalThreads"`
	Running       int    `json:"running" yaml:"running"`
	Sleeping      int    `json:"sleeping" yaml:"sleeping"`
	Zombie        int    `json:"zombie" yaml:"zombie"`
}
