package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/wardkeep/tui-go/internal/api"
	"github.com/wardkeep/tui-go/internal/config"
	"github.com/wardkeep/tui-go/internal/session"
)

// signedToken builds a credential the way the housekeeping API issues them
func signedToken(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   "u-1",
		"role":      role,
		"full_name": "Test User",
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// testRoot builds a root model over a temp credential store. An empty token
// means no persisted credential.
func testRoot(t *testing.T, token string) (Model, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		if err := store.Establish(token); err != nil {
			t.Fatalf("establish: %v", err)
		}
	}
	cfg := &config.Config{APIURL: "http://127.0.0.1:0", DownloadDir: t.TempDir()}
	client := api.NewClient(cfg.APIURL)
	return NewRootModel(cfg, store, client), store
}

func TestInitialRouteWithoutCredential(t *testing.T) {
	m, _ := testRoot(t, "")

	if m.route != RouteLogin {
		t.Errorf("route = %v, want login", m.route)
	}
	if _, ok := m.page.(*loginPage); !ok {
		t.Errorf("page = %T, want *loginPage", m.page)
	}
	if m.sess != nil {
		t.Error("no session should be derived without a credential")
	}
}

func TestInitialRouteByRole(t *testing.T) {
	tests := []struct {
		role string
		want Route
	}{
		{"cleaner", RouteCleaner},
		{"manager", RouteManager},
		{"dean", RouteAdmin},
		{"bmc_commissioner", RouteAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			m, _ := testRoot(t, signedToken(t, tt.role))
			if m.route != tt.want {
				t.Errorf("route = %v, want %v", m.route, tt.want)
			}
			if m.sess == nil {
				t.Fatal("session should be derived")
			}
		})
	}
}

func TestUnrecognizedRoleForcesLogout(t *testing.T) {
	m, store := testRoot(t, signedToken(t, "plumber"))

	if m.route != RouteLogin {
		t.Errorf("route = %v, want login after forced logout", m.route)
	}
	if store.Current() != nil {
		t.Error("credential should have been cleared")
	}
	if m.notice != "You have been logged out." {
		t.Errorf("notice = %q, want logout notice", m.notice)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	m, _ := testRoot(t, signedToken(t, "manager"))

	first := m.route
	(&m).resolve()
	if m.route != first {
		t.Errorf("route changed across resolutions: %v then %v", first, m.route)
	}
	// The page is rebuilt from scratch each load, so nothing accumulates.
	if _, ok := m.page.(*managerPage); !ok {
		t.Errorf("page = %T, want *managerPage", m.page)
	}
}

func TestGotoAuthSwitchesPages(t *testing.T) {
	m, _ := testRoot(t, "")

	next, _ := m.Update(gotoAuthMsg{fragment: fragmentRegister})
	m = next.(Model)

	if m.route != RouteRegister {
		t.Errorf("route = %v, want register", m.route)
	}
	if _, ok := m.page.(*registerPage); !ok {
		t.Errorf("page = %T, want *registerPage", m.page)
	}
}

func TestStaleGenerationMessageIsInert(t *testing.T) {
	m, _ := testRoot(t, "")
	staleGen := m.pageGen

	// Navigate away; the login page is discarded.
	next, _ := m.Update(gotoAuthMsg{fragment: fragmentRegister})
	m = next.(Model)

	// A login response arriving late must not touch the new page.
	next, cmd := m.Update(loginResultMsg{stamp: stamp(staleGen), token: "tok-late"})
	m = next.(Model)

	if cmd != nil {
		t.Error("stale message should produce no follow-up command")
	}
	if _, ok := m.page.(*registerPage); !ok {
		t.Errorf("page = %T, want *registerPage untouched", m.page)
	}
}

func TestEstablishSessionRoutesByRole(t *testing.T) {
	m, store := testRoot(t, "")

	next, _ := m.Update(establishSessionMsg{token: signedToken(t, "cleaner")})
	m = next.(Model)

	if m.route != RouteCleaner {
		t.Errorf("route = %v, want cleaner", m.route)
	}
	if store.Current() == nil {
		t.Error("credential should be persisted")
	}
	if m.notice != "Login successful!" {
		t.Errorf("notice = %q, want login notice", m.notice)
	}
}

func TestRegistrationDoneReturnsToLogin(t *testing.T) {
	m, _ := testRoot(t, "")
	next, _ := m.Update(gotoAuthMsg{fragment: fragmentRegister})
	m = next.(Model)

	next, _ = m.Update(registrationDoneMsg{})
	m = next.(Model)

	if m.route != RouteLogin {
		t.Errorf("route = %v, want login", m.route)
	}
	if m.notice != "Registration successful! Please log in." {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestNoticeExpiryIsSequenceGuarded(t *testing.T) {
	m, _ := testRoot(t, "")

	next, _ := m.Update(noticeMsg{text: "first", isErr: false})
	m = next.(Model)
	firstSeq := m.noticeSeq

	next, _ = m.Update(noticeMsg{text: "second", isErr: true})
	m = next.(Model)

	// The first notice's expiry fires late; it must not clear the second.
	next, _ = m.Update(noticeExpiredMsg{seq: firstSeq})
	m = next.(Model)
	if m.notice != "second" {
		t.Errorf("stale expiry cleared the live notice, got %q", m.notice)
	}

	next, _ = m.Update(noticeExpiredMsg{seq: m.noticeSeq})
	m = next.(Model)
	if m.notice != "" {
		t.Errorf("notice should clear on its own expiry, got %q", m.notice)
	}
}
