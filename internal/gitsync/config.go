package gitsync

// Config holds the synchronizer settings.
type Config struct {
	// BaseDir is the directory under which one working copy per repository
	// name is kept.
	BaseDir string
}
