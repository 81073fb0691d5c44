package gitsync

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gatescan/gatescan/internal/giturl"
)

var (
	ErrSSHUnsupported     = errors.New("only https remotes are supported")
	ErrOpenFailed         = errors.New("failed to open repository")
	ErrCloneFailed        = errors.New("failed to clone repository")
	ErrRemoteUpdateFailed = errors.New("failed to update remote url")
	ErrFetchFailed        = errors.New("failed to fetch repository")
	ErrCheckoutFailed     = errors.New("failed to checkout branch")
	ErrResetFailed        = errors.New("failed to reset branch")
)

// SyncError is the only error type the synchronizer lets escape for
// underlying git failures. Its message has all credential material replaced
// with the redaction marker, so it is safe to log or return as-is.
type SyncError struct {
	Repository string
	Branch     string
	Kind       error
	Reason     string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s@%s: %v: %s", e.Repository, e.Branch, e.Kind, e.Reason)
}

func (e *SyncError) Unwrap() error {
	return e.Kind
}

// newSyncError wraps an underlying git error, scrubbing every secret from
// its text. The raw credential value is scrubbed directly, not just
// URL-shaped substrings, because authentication failures can echo the token
// outside any URL.
func newSyncError(repository, branch string, kind, cause error, secrets []string) *SyncError {
	return &SyncError{
		Repository: repository,
		Branch:     branch,
		Kind:       kind,
		Reason:     sanitize(cause.Error(), secrets),
	}
}

func sanitize(text string, secrets []string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		text = strings.ReplaceAll(text, secret, giturl.RedactionMark)
	}
	return text
}

// secretVariants lists every substring that must never survive into an
// error message: the full credential and, for "user:token" pairs, the bare
// token as well.
func secretVariants(secret string) []string {
	if secret == "" {
		return nil
	}
	variants := []string{secret}
	if _, token, found := strings.Cut(secret, ":"); found && token != "" {
		variants = append(variants, token)
	}
	return variants
}
