// Package redact strips sensitive fragments from strings before they are
// logged or attached to error responses. Error text in this service can
// carry database connection strings, bearer tokens, and filesystem paths;
// none of those belong in a log line.
package redact

import "regexp"

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; the credential patterns run first so a
// connection string is collapsed before the path pattern can match its
// tail.
var rules = []rule{
	// Connection strings with embedded credentials
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@[^\s]+`), CredentialPlaceholder},

	// password=..., secret=..., key=... style fragments
	{regexp.MustCompile(`(?i)(password|passwd|secret|api[_-]?key)([=:\s]['"]?)[^'"&\s]{3,}`), CredentialPlaceholder},

	// JWT tokens (three base64url segments, header always starts with eyJ)
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), TokenPlaceholder},

	// Absolute unix paths
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
}

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive fragments from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
