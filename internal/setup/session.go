package setup

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/asistenciav2/portal/internal/config"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

var NewSessionStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (sessions.Store, error) {
	keyPairs := make([][]byte, 0)
	if len(conf.HTTP.Session.Keys) == 0 {
		slog.WarnContext(ctx, "no session key configured, sessions will not survive a restart")

		key, err := getRandomBytes(32)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate cookie signing key")
		}

		keyPairs = append(keyPairs, key)
	} else {
		for _, k := range conf.HTTP.Session.Keys {
			keyPairs = append(keyPairs, []byte(k))
		}
	}

	sessionStore := sessions.NewCookieStore(keyPairs...)

	cookie := conf.HTTP.Session.Cookie

	if cookie.MaxAge != nil {
		sessionStore.MaxAge(int(time.Duration(*cookie.MaxAge) / time.Second))
	}

	sessionStore.Options.Path = string(cookie.Path)
	sessionStore.Options.HttpOnly = bool(cookie.HTTPOnly)
	sessionStore.Options.Secure = bool(cookie.Secure)
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return sessionStore, nil
})

func getRandomBytes(n int) ([]byte, error) {
	data := make([]byte, n)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != n {
		return nil, errors.Errorf("could not read %d bytes", n)
	}

	return data, nil
}
