package orchestrator

import "time"

type Config struct {
	// Interval between scheduled passes. Zero disables the scheduler;
	// passes then run only on demand.
	Interval time.Duration
	// Parallel runs repositories concurrently. Branches of one
	// repository always run sequentially because they share a working
	// copy.
	Parallel bool
}
