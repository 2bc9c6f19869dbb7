package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func register(t *testing.T, ts *httptest.Server, email, username, password, confirm string) (*http.Response, map[string]string) {
	t.Helper()
	var body map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", map[string]string{
		"email":           email,
		"username":        username,
		"password":        password,
		"confirmPassword": confirm,
	}, &body)
	return resp, body
}

func login(t *testing.T, ts *httptest.Server, username, password string) (*http.Response, map[string]string) {
	t.Helper()
	var body map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &body)
	return resp, body
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	resp, body := register(t, ts, "ana@example.com", "ana", "hunter2", "hunter2")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d, want 201", resp.StatusCode)
	}
	if body["message"] != "Registration successful" {
		t.Errorf("register message = %q", body["message"])
	}
	if body["userId"] != "" {
		t.Error("register must not return the created identity")
	}

	resp, body = login(t, ts, "ana", "hunter2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d, want 200", resp.StatusCode)
	}
	if body["userId"] == "" {
		t.Error("login returned empty userId")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	ts := newTestServer(t)

	resp, body := register(t, ts, "bo@example.com", "bo", "one", "two")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if body["message"] != "Passwords do not match" {
		t.Errorf("message = %q", body["message"])
	}

	// Mismatch fails before any record exists.
	resp, _ = login(t, ts, "bo", "one")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("login after failed register: status %d, want 400", resp.StatusCode)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ts := newTestServer(t)

	if resp, _ := register(t, ts, "cy@example.com", "cy", "pw", "pw"); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register: status %d", resp.StatusCode)
	}

	// Same username, different email.
	resp, body := register(t, ts, "cy2@example.com", "cy", "pw", "pw")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate username: status %d, want 400", resp.StatusCode)
	}
	if body["message"] != "Email or username already exists" {
		t.Errorf("message = %q", body["message"])
	}

	// Same email, different username.
	resp, _ = register(t, ts, "cy@example.com", "cyril", "pw", "pw")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("duplicate email: status %d, want 400", resp.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "di@example.com", "di", "right", "right")

	resp, body := login(t, ts, "di", "wrong")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400 (not a server error)", resp.StatusCode)
	}
	if body["message"] != "Invalid credentials" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestLoginUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	resp, body := login(t, ts, "ghost", "pw")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if body["message"] != "Invalid credentials" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestPasswordsStoredHashed(t *testing.T) {
	store := newMemoryStore()
	a := &api{cfg: Config{JWTSecret: "s", CookieName: "c"}, store: store}
	ts := httptest.NewServer(newRouter(a))
	defer ts.Close()

	register(t, ts, "ed@example.com", "ed", "plaintext", "plaintext")

	u, err := store.UserByUsername("ed")
	if err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if u.PasswordHash == "plaintext" {
		t.Error("password stored in plaintext")
	}
	if u.PasswordHash == "" {
		t.Error("password hash empty")
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "fi@example.com", "fi", "pw", "pw")

	resp, _ := login(t, ts, "fi", "pw")
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == "asana_auth" && c.Value != "" && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("login did not set the session cookie")
	}
}
