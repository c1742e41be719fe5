package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/pkg/errors"
)

func TestClientFetchIdentity(t *testing.T) {
	type testCase struct {
		Status int
		Body   string
		Assert func(t *testing.T, identity *menu.Identity, err error)
	}

	testCases := []testCase{
		{
			Status: http.StatusOK,
			Body:   `{"success":true,"id":3,"isAdmin":true,"nombre":"Ana","apellidos":"Ruiz"}`,
			Assert: func(t *testing.T, identity *menu.Identity, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := "Ana Ruiz", identity.DisplayName(); e != g {
					t.Errorf("identity.DisplayName(): expected '%v', got '%v'", e, g)
				}

				if e, g := true, identity.Privileged; e != g {
					t.Errorf("identity.Privileged: expected '%v', got '%v'", e, g)
				}

				if e, g := int64(3), identity.ID; e != g {
					t.Errorf("identity.ID: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Status: http.StatusOK,
			Body:   `{"success":true}`,
			Assert: func(t *testing.T, identity *menu.Identity, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := menu.RoleUser, identity.Role(); e != g {
					t.Errorf("identity.Role(): expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Status: http.StatusOK,
			Body:   `{"success":"true","isAdmin":"1","nombre":null}`,
			Assert: func(t *testing.T, identity *menu.Identity, err error) {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				if e, g := true, identity.Privileged; e != g {
					t.Errorf("identity.Privileged: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Status: http.StatusOK,
			Body:   `{"success":false}`,
			Assert: func(t *testing.T, identity *menu.Identity, err error) {
				if !errors.Is(err, menu.ErrIdentityInvalid) {
					t.Errorf("err: expected '%v', got '%v'", menu.ErrIdentityInvalid, err)
				}
			},
		},
		{
			Status: http.StatusOK,
			Body:   `<html>login</html>`,
			Assert: func(t *testing.T, identity *menu.Identity, err error) {
				if !errors.Is(err, menu.ErrIdentityInvalid) {
					t.Errorf("err: expected '%v', got '%v'", menu.ErrIdentityInvalid, err)
				}
			},
		},
		{
			Status: http.StatusInternalServerError,
			Body:   `{"success":true}`,
			Assert: func(t *testing.T, identity *menu.Identity, err error) {
				if !errors.Is(err, menu.ErrIdentityUnavailable) {
					t.Errorf("err: expected '%v', got '%v'", menu.ErrIdentityUnavailable, err)
				}
			},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.Status)
				fmt.Fprint(w, tc.Body)
			}))
			defer server.Close()

			client := NewClient(WithEndpoint(server.URL))

			identity, err := client.FetchIdentity(context.Background())

			tc.Assert(t, identity, err)
		})
	}
}

func TestClientForwardsCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("asistencia_session")
		if err != nil || cookie.Value != "abc" {
			fmt.Fprint(w, `{"success":false}`)
			return
		}

		fmt.Fprint(w, `{"success":true,"nombre":"Ana"}`)
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))

	req := httptest.NewRequest(http.MethodGet, "/asistenciaV2r/dashboard.html", nil)
	req.AddCookie(&http.Cookie{Name: "asistencia_session", Value: "abc"})

	identity, err := client.ForRequest(req).FetchIdentity(context.Background())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Ana", identity.DisplayName(); e != g {
		t.Errorf("identity.DisplayName(): expected '%v', got '%v'", e, g)
	}

	if _, err := client.FetchIdentity(context.Background()); !errors.Is(err, menu.ErrIdentityInvalid) {
		t.Errorf("err: expected '%v', got '%v'", menu.ErrIdentityInvalid, err)
	}
}

func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client := NewClient(WithEndpoint(endpoint))

	if _, err := client.FetchIdentity(context.Background()); !errors.Is(err, menu.ErrIdentityUnavailable) {
		t.Errorf("err: expected '%v', got '%v'", menu.ErrIdentityUnavailable, err)
	}
}
