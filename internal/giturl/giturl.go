// Package giturl classifies repository URLs and rewrites them to embed or
// mask credential material. Mask is the single choke point every URL must
// pass through before it reaches a log sink.
package giturl

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnsupportedScheme marks a remote whose scheme cannot carry the
// resolved credential; only https remotes embed tokens.
var ErrUnsupportedScheme = errors.New("credentials require an https remote")

// HostKind classifies a remote URL by its authentication convention.
type HostKind string

const (
	HostGitHub       HostKind = "github"
	HostGenericHTTPS HostKind = "generic"
)

// DefaultUsername is prepended to bare tokens for generic HTTPS hosts,
// following the Bitbucket access-token convention.
const DefaultUsername = "x-token-auth"

// RedactionMark replaces credential material in masked URLs.
const RedactionMark = "***"

const githubHost = "github.com"

var (
	sshShorthandPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+:`)
	urlAuthPattern      = regexp.MustCompile(`^([a-z][a-z0-9+.-]*://)([^/@]+)@`)
)

// IsSSH reports whether the URL uses the user-at-host SSH shorthand form.
func IsSSH(rawURL string) bool {
	return sshShorthandPattern.MatchString(rawURL)
}

// Classify determines the host kind of a repository URL.
func Classify(rawURL string) HostKind {
	if strings.Contains(rawURL, githubHost) {
		return HostGitHub
	}
	return HostGenericHTTPS
}

// ApplyAuth rewrites an HTTPS URL to embed the given secret. An empty secret
// returns the URL unchanged. For GitHub the token is injected as-is; for
// generic hosts a bare token is prefixed with DefaultUsername, while a
// "user:token" pair is injected verbatim. A credential on a non-https URL is
// ErrUnsupportedScheme: sending it unauthenticated would be a silent
// misconfiguration.
func ApplyAuth(rawURL, secret string, kind HostKind) (string, error) {
	if secret == "" {
		return rawURL, nil
	}

	rest, ok := strings.CutPrefix(rawURL, "https://")
	if !ok {
		return "", ErrUnsupportedScheme
	}

	auth := secret
	if kind == HostGenericHTTPS && !strings.Contains(secret, ":") {
		auth = DefaultUsername + ":" + secret
	}

	return "https://" + auth + "@" + rest, nil
}

// Mask replaces the auth component of a URL with RedactionMark. URLs without
// an embedded auth component pass through unchanged.
func Mask(rawURL string) string {
	return urlAuthPattern.ReplaceAllString(rawURL, "${1}"+RedactionMark+"@")
}
