package credentials

import (
	"testing"

	"github.com/gatescan/gatescan/internal/giturl"
	"go.uber.org/zap/zaptest"
)

func mapLookup(values map[string]string) Lookup {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestResolve_RepositorySpecificWinsOverFallback(t *testing.T) {
	resolver := NewResolver(mapLookup(map[string]string{
		"GIT_TOKEN_SVC_A": "repo-token",
		"GITHUB_TOKEN":    "generic-token",
	}), zaptest.NewLogger(t))

	cred, ok := resolver.Resolve("svc-a", giturl.HostGitHub)
	if !ok {
		t.Fatal("expected a credential")
	}
	if cred.Secret() != "repo-token" {
		t.Errorf("expected repository-specific token, got %q", cred.Secret())
	}
}

func TestResolve_FallbackWhenNoRepositoryKey(t *testing.T) {
	resolver := NewResolver(mapLookup(map[string]string{
		"GITHUB_TOKEN":    "gh-token",
		"BITBUCKET_TOKEN": "bb-token",
	}), zaptest.NewLogger(t))

	cred, ok := resolver.Resolve("svc-a", giturl.HostGitHub)
	if !ok || cred.Secret() != "gh-token" {
		t.Errorf("expected github fallback, got %q (ok=%v)", cred.Secret(), ok)
	}

	cred, ok = resolver.Resolve("svc-a", giturl.HostGenericHTTPS)
	if !ok || cred.Secret() != "bb-token" {
		t.Errorf("expected bitbucket fallback, got %q (ok=%v)", cred.Secret(), ok)
	}
}

func TestResolve_AbsentIsNotAnError(t *testing.T) {
	resolver := NewResolver(mapLookup(nil), zaptest.NewLogger(t))

	cred, ok := resolver.Resolve("svc-a", giturl.HostGitHub)
	if ok {
		t.Errorf("expected no credential, got %q", cred.Secret())
	}
}

func TestResolve_BitbucketRepositoryKey(t *testing.T) {
	resolver := NewResolver(mapLookup(map[string]string{
		"BITBUCKET_TOKEN_MY_SERVICE_2": "bb-repo-token",
	}), zaptest.NewLogger(t))

	cred, ok := resolver.Resolve("my-service.2", giturl.HostGenericHTTPS)
	if !ok || cred.Secret() != "bb-repo-token" {
		t.Errorf("expected repository-specific bitbucket token, got %q (ok=%v)", cred.Secret(), ok)
	}
}

func TestCredentialStringerIsRedacted(t *testing.T) {
	cred := Credential("super-secret")
	if cred.String() == "super-secret" {
		t.Error("credential Stringer must not expose the secret")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"svc-a", "SVC_A"},
		{"my.repo/x", "MY_REPO_X"},
		{"Repo123", "REPO123"},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
