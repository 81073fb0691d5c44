package credentials

// Lookup reads a named secret from the process environment or any
// substitute key-value source supplied by tests.
type Lookup func(key string) (string, bool)

// Credential is an opaque secret. Its Stringer is intentionally redacted so
// the raw value cannot end up in a log line by accident; use Secret to get
// the cleartext value.
type Credential string

func (c Credential) String() string {
	return "***"
}

// Secret returns the cleartext credential value.
func (c Credential) Secret() string {
	return string(c)
}
