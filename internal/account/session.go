package account

import (
	"net/http"

	"github.com/asistenciav2/portal/internal/store"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

var errSessionNotFound = errors.New("session not found")

const (
	sessionKeyUserID    = "userID"
	sessionKeySubject   = "subject"
	sessionKeySessionID = "sid"
)

// sessionUser is the user stored in the session cookie.
type sessionUser struct {
	ID        int64
	Subject   string
	SessionID string
}

func (h *Handler) storeSessionUser(w http.ResponseWriter, r *http.Request, user *store.User) (string, error) {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		// A stale or tampered cookie yields a fresh session alongside the error
		if sess == nil {
			return "", errors.WithStack(err)
		}
	}

	sessionID := xid.New().String()

	sess.Values[sessionKeyUserID] = user.ID
	sess.Values[sessionKeySubject] = user.UserSubject()
	sess.Values[sessionKeySessionID] = sessionID

	if err := sess.Save(r, w); err != nil {
		return "", errors.WithStack(err)
	}

	return sessionID, nil
}

func (h *Handler) retrieveSessionUser(r *http.Request) (*sessionUser, error) {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	userID, ok := sess.Values[sessionKeyUserID].(int64)
	if !ok {
		return nil, errors.WithStack(errSessionNotFound)
	}

	subject, _ := sess.Values[sessionKeySubject].(string)
	sessionID, _ := sess.Values[sessionKeySessionID].(string)

	return &sessionUser{
		ID:        userID,
		Subject:   subject,
		SessionID: sessionID,
	}, nil
}

func (h *Handler) clearSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		if sess == nil {
			return errors.WithStack(err)
		}
	}

	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
