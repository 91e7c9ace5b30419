package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wardkeep/tui-go/internal/api"
)

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestLoginSubmitDisablesUntilResponse(t *testing.T) {
	p := newLoginPage(api.NewClient("http://127.0.0.1:0"), 1)
	p.email.SetValue("asha@hospital.example")
	p.password.SetValue("secret")

	page, cmd := p.Update(enterKey())
	p = page.(*loginPage)
	if cmd == nil {
		t.Fatal("submit should produce a request command")
	}
	if !p.submitting {
		t.Error("submitting flag should be set")
	}

	// A second enter while in flight must not produce a second request.
	page, cmd = p.Update(enterKey())
	p = page.(*loginPage)
	if cmd != nil {
		t.Error("duplicate submit should be ignored while in flight")
	}
}

func TestLoginFailureReenablesAndKeepsValues(t *testing.T) {
	p := newLoginPage(api.NewClient("http://127.0.0.1:0"), 1)
	p.email.SetValue("asha@hospital.example")
	p.password.SetValue("wrong")
	p.submitting = true

	page, cmd := p.Update(loginResultMsg{stamp: 1, err: &api.RemoteError{Message: "invalid credentials"}})
	p = page.(*loginPage)

	if p.submitting {
		t.Error("control must be re-enabled after failure")
	}
	if p.email.Value() != "asha@hospital.example" || p.password.Value() != "wrong" {
		t.Error("field values must be retained after failure")
	}

	if cmd == nil {
		t.Fatal("failure should surface a notice")
	}
	msg := cmd()
	notice, ok := msg.(noticeMsg)
	if !ok {
		t.Fatalf("expected noticeMsg, got %T", msg)
	}
	if notice.text != "invalid credentials" || !notice.isErr {
		t.Errorf("notice should carry the server message, got %+v", notice)
	}
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	p := newLoginPage(api.NewClient("http://127.0.0.1:0"), 1)
	p.submitting = true

	page, cmd := p.Update(loginResultMsg{stamp: 1, token: "tok-abc"})
	p = page.(*loginPage)

	if p.submitting {
		t.Error("submitting flag should clear on success")
	}
	if cmd == nil {
		t.Fatal("success should hand the token to the root")
	}
	msg := cmd()
	est, ok := msg.(establishSessionMsg)
	if !ok {
		t.Fatalf("expected establishSessionMsg, got %T", msg)
	}
	if est.token != "tok-abc" {
		t.Errorf("token = %q, want tok-abc", est.token)
	}
}

func TestLoginGenericNetworkError(t *testing.T) {
	p := newLoginPage(api.NewClient("http://127.0.0.1:0"), 1)
	p.submitting = true

	page, cmd := p.Update(loginResultMsg{stamp: 1, err: errors.New("connection refused")})
	p = page.(*loginPage)

	if p.submitting {
		t.Error("control must be re-enabled after a network failure")
	}
	if cmd == nil {
		t.Fatal("network failure should surface a notice")
	}
}
