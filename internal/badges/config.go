package badges

type Config struct {
	// SonarURL is the base URL of the SonarQube server.
	SonarURL string
	// Token authenticates badge token lookups; optional on open servers.
	Token string
	// OutputFile is where the dashboard HTML is written. Empty disables
	// writing to disk; the dashboard is still served over HTTP.
	OutputFile string
}
