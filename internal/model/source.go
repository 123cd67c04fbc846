// Package model defines the data structures shared by the test harness layers.
package model

// Path represents a file system path.
type Path string

// TestFile is a discovered test source.
type TestFile struct {
	// Path is the file location as found on disk.
	Path Path
	// Root is the directory discovery started from.
	Root Path
}
