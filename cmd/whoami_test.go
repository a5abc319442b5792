// ABOUTME: Tests for the whoami and logout commands
// ABOUTME: Both read or clear only the local store, never the network

package cmd

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/sweetworks/sweetshop-cli/internal/api"
	"github.com/sweetworks/sweetshop-cli/internal/credstore"
)

func TestRunWhoamiAnonymous(t *testing.T) {
	setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("whoami must not hit the network")
	})

	var buf bytes.Buffer
	if code := runWhoami(&buf); code != 1 {
		t.Fatalf("exit code = %d, want 1 when anonymous", code)
	}
	if buf.String() != "Not logged in.\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Not logged in.\n")
	}
}

func TestRunWhoamiLoggedIn(t *testing.T) {
	setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("whoami must not hit the network")
	})
	seedSession(t, "tkn", &api.User{ID: "u1", Name: "Jane", Email: "jane@example.com"})

	var buf bytes.Buffer
	if code := runWhoami(&buf); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(buf.String(), "Logged in as Jane (jane@example.com)") {
		t.Errorf("output = %q, want the signed-in line", buf.String())
	}
}

func TestRunWhoamiTokenWithoutProfile(t *testing.T) {
	setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("whoami must not hit the network")
	})
	seedSession(t, "tkn", nil)

	var buf bytes.Buffer
	if code := runWhoami(&buf); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if buf.String() != "Logged in (no cached profile).\n" {
		t.Errorf("output = %q, want the no-profile line", buf.String())
	}
}

func TestRunWhoamiJSON(t *testing.T) {
	setupTest(t, func(w http.ResponseWriter, r *http.Request) {})
	seedSession(t, "tkn", &api.User{ID: "u1", Name: "Jane"})
	jsonOutput = true

	var buf bytes.Buffer
	if code := runWhoami(&buf); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(buf.String(), `"authenticated": true`) {
		t.Errorf("output = %q, want JSON with authenticated true", buf.String())
	}
	if !strings.Contains(buf.String(), `"name": "Jane"`) {
		t.Errorf("output = %q, want the user in JSON", buf.String())
	}
}

func TestRunLogoutClearsSession(t *testing.T) {
	setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("logout must not hit the network")
	})
	seedSession(t, "tkn", &api.User{ID: "u1", Name: "Jane"})

	var buf bytes.Buffer
	if code := runLogout(&buf); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if buf.String() != "Logged out.\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Logged out.\n")
	}

	if token, user := credstore.New(configDir).Read(); token != "" || user != nil {
		t.Errorf("expected cleared store, got token=%q user=%+v", token, user)
	}
}

func TestRunLogoutWhenAnonymous(t *testing.T) {
	setupTest(t, func(w http.ResponseWriter, r *http.Request) {})

	var buf bytes.Buffer
	if code := runLogout(&buf); code != 0 {
		t.Fatalf("exit code = %d, want 0 even when already logged out", code)
	}
	if buf.String() != "Not logged in.\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Not logged in.\n")
	}
}
