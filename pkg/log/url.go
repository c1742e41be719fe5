package log

import (
	"log/slog"
	"net/url"
	"strings"
)

var sensitiveParams = []string{"token", "password", "secret", "key"}

// ScrubbedURL masks the credentials and the sensitive query parameters of
// the given URL.
func ScrubbedURL(name string, rawURL string) slog.Attr {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slog.String(name, rawURL)
	}

	scrubbed := u.JoinPath()

	if u.User != nil {
		scrubbed.User = url.UserPassword("xxx", "xxx")
	}

	if u.RawQuery != "" {
		query := u.Query()
		for param := range query {
			if isSensitive(param) {
				query.Set(param, "xxx")
			}
		}

		scrubbed.RawQuery = query.Encode()
	}

	return slog.String(name, scrubbed.String())
}

func isSensitive(param string) bool {
	param = strings.ToLower(param)

	for _, s := range sensitiveParams {
		if strings.Contains(param, s) {
			return true
		}
	}

	return false
}
