package credentials

import (
	"strings"

	"github.com/gatescan/gatescan/internal/giturl"
	"go.uber.org/zap"
)

const (
	githubRepoPrefix    = "GIT_TOKEN_"
	bitbucketRepoPrefix = "BITBUCKET_TOKEN_"

	githubFallbackKey    = "GITHUB_TOKEN"
	bitbucketFallbackKey = "BITBUCKET_TOKEN"
)

// Resolver picks the authentication token for a repository. Precedence is
// repository-specific key first, then the host-wide fallback; a missing
// credential is not an error. Tokens are resolved fresh on every call since
// they may rotate between sync passes.
type Resolver struct {
	lookup Lookup
	logger *zap.Logger
}

func NewResolver(lookup Lookup, logger *zap.Logger) *Resolver {
	return &Resolver{
		lookup: lookup,
		logger: logger,
	}
}

// Resolve returns the credential for (repoName, kind), or false when no
// credential source is configured.
func (r *Resolver) Resolve(repoName string, kind giturl.HostKind) (Credential, bool) {
	repoKey, fallbackKey := keysFor(repoName, kind)

	if value, ok := r.lookup(repoKey); ok && value != "" {
		r.logger.Debug("resolved repository-specific credential",
			zap.String("repository", repoName),
			zap.String("key", repoKey))
		return Credential(value), true
	}

	if value, ok := r.lookup(fallbackKey); ok && value != "" {
		r.logger.Debug("resolved host-wide credential",
			zap.String("repository", repoName),
			zap.String("key", fallbackKey))
		return Credential(value), true
	}

	r.logger.Debug("no credential configured", zap.String("repository", repoName))
	return "", false
}

func keysFor(repoName string, kind giturl.HostKind) (repoKey, fallbackKey string) {
	if kind == giturl.HostGitHub {
		return githubRepoPrefix + normalizeName(repoName), githubFallbackKey
	}
	return bitbucketRepoPrefix + normalizeName(repoName), bitbucketFallbackKey
}

// normalizeName converts a repository name to environment-key form:
// uppercased with every non-alphanumeric rune replaced by an underscore.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
