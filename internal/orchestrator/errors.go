package orchestrator

import "errors"

var (
	ErrUnknownRepository = errors.New("repository not configured")
	ErrUnknownBranch     = errors.New("branch not configured")
)
