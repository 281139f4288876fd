package cli

import "net/url"

// maskConnectionString hides the password of a database connection string for display
func maskConnectionString(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.Scheme == "" {
		return "***"
	}
	return u.Redacted()
}
