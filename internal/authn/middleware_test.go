package authn

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

type testUser struct{}

func (testUser) UserSubject() string  { return "ana@example.com" }
func (testUser) UserProvider() string { return "local" }

func TestChain(t *testing.T) {
	type testCase struct {
		Path          string
		Authenticator Authenticator
		Expected      int
	}

	anonymous := AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (User, error) {
		return nil, nil
	})

	redirect := AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (User, error) {
		http.Redirect(w, r, "/asistenciaV2r/login.html", http.StatusSeeOther)
		return nil, errors.WithStack(ErrCancel)
	})

	authenticated := AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (User, error) {
		return testUser{}, nil
	})

	testCases := []testCase{
		{"/asistenciaV2r/dashboard.html", anonymous, http.StatusUnauthorized},
		{"/asistenciaV2r/dashboard.html", redirect, http.StatusSeeOther},
		{"/asistenciaV2r/dashboard.html", authenticated, http.StatusOK},
		{"/asistenciaV2r/login.html", anonymous, http.StatusOK},
		{"/asistenciaV2r/js/menu.js", anonymous, http.StatusOK},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			middleware := Chain(
				WithAuthenticators(tc.Authenticator),
				WithPublicPaths([]string{"/login.html"}, []string{"/js/"}),
			)

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := ContextUser(r.Context()); err != nil && r.URL.Path == "/asistenciaV2r/dashboard.html" {
					t.Errorf("expected user in context")
				}
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.Path, nil))

			if e, g := tc.Expected, w.Code; e != g {
				t.Errorf("w.Code: expected '%v', got '%v'", e, g)
			}
		})
	}
}
