package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Payload is the body returned by the identity endpoint.
type Payload struct {
	Success   bool   `mapstructure:"success"`
	ID        int64  `mapstructure:"id"`
	IsAdmin   bool   `mapstructure:"isAdmin"`
	Nombre    string `mapstructure:"nombre"`
	Apellidos string `mapstructure:"apellidos"`
}

// Client fetches the current user identity, forwarding the cookies of the
// originating request.
type Client struct {
	endpoint   string
	httpClient *http.Client
	cookies    []*http.Cookie
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) FetchIdentity(ctx context.Context) (*menu.Identity, error) {
	if c.endpoint == "" {
		return nil, errors.Wrap(menu.ErrIdentityUnavailable, "no identity endpoint configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(menu.ErrIdentityUnavailable, "could not create request: %s", err)
	}

	req.Header.Set("Accept", "application/json")

	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(menu.ErrIdentityUnavailable, "%s", err)
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.Wrapf(menu.ErrIdentityUnavailable, "unexpected status '%s'", res.Status)
	}

	var raw map[string]any
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, errors.Wrapf(menu.ErrIdentityInvalid, "could not decode payload: %s", err)
	}

	payload, err := DecodePayload(raw)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !payload.Success {
		return nil, errors.Wrap(menu.ErrIdentityInvalid, "identity endpoint reported failure")
	}

	slog.DebugContext(ctx, "identity fetched", log.ScrubbedURL("endpoint", c.endpoint), slog.Int64("userID", payload.ID), slog.Bool("isAdmin", payload.IsAdmin))

	return &menu.Identity{
		ID:         payload.ID,
		GivenName:  payload.Nombre,
		Surname:    payload.Apellidos,
		Privileged: payload.IsAdmin,
	}, nil
}

var _ menu.IdentitySource = &Client{}

// DecodePayload maps a loosely typed document onto a Payload. Absent and
// null fields keep their zero value.
func DecodePayload(raw map[string]any) (*Payload, error) {
	payload := &Payload{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           payload,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrapf(menu.ErrIdentityInvalid, "%s", err)
	}

	return payload, nil
}

// ForRequest returns a copy of the client sending the cookies of r.
func (c *Client) ForRequest(r *http.Request) *Client {
	return &Client{
		endpoint:   c.endpoint,
		httpClient: c.httpClient,
		cookies:    r.Cookies(),
	}
}

func NewClient(funcs ...OptionFunc) *Client {
	opts := NewOptions(funcs...)

	return &Client{
		endpoint:   opts.Endpoint,
		httpClient: opts.HTTPClient,
	}
}
