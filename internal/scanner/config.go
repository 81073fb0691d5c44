package scanner

// Config holds the SonarQube scanner invocation settings.
type Config struct {
	// Binary is the scanner executable to invoke.
	Binary string
	// HostURL is the SonarQube server base URL.
	HostURL string
	// Token authenticates the scanner against the server.
	Token string
	// ExtraArgs are appended verbatim to every invocation.
	ExtraArgs []string
}
