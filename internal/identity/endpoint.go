package identity

import (
	"net"
	"net/url"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/pkg/errors"
)

// EndpointPath is the path of the user info endpoint under the application
// prefix.
const EndpointPath = menu.BasePath + "/api/userInfo"

// LoopbackEndpoint returns the user info URL served by a listener bound to
// address. Wildcard hosts are reached through localhost.
func LoopbackEndpoint(address string) (string, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse listen address '%s'", address)
	}

	if port == "" {
		return "", errors.Errorf("listen address '%s' has no port", address)
	}

	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}

	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, port),
		Path:   EndpointPath,
	}

	return u.String(), nil
}
