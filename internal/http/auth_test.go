package handlers_test

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSignUpRejectsShortPassword(t *testing.T) {
	e := newTestApp(t)
	resp, body := e.do(t, jsonReq("POST", "/auth/signup", "", map[string]string{
		"firstName": "Aline", "lastName": "U", "email": "aline@x.rw", "password": "12345",
	}))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("want 400, got %d %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "at least 6") {
		t.Fatalf("message missing: %s", body)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	e := newTestApp(t)
	e.signUpAndLogin(t, "Aline", "aline@x.rw")
	resp, _ := e.do(t, jsonReq("POST", "/auth/signup", "", map[string]string{
		"firstName": "Other", "lastName": "U", "email": "aline@x.rw", "password": "secret1",
	}))
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("want 409, got %d", resp.StatusCode)
	}
}

func TestLoginFailureIsLoggedWithoutDetail(t *testing.T) {
	e := newTestApp(t)
	var status int
	var body string
	entries := captureLogs(t, func() {
		resp, b := e.do(t, jsonReq("POST", "/auth/login", "", map[string]string{
			"email": "seller@localcart.test", "password": "wrong-password",
		}))
		status, body = resp.StatusCode, b
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("want 401, got %d", status)
	}
	if !strings.Contains(body, "Invalid email or password") {
		t.Fatalf("body %s", body)
	}
	if !hasAction(entries, "auth.login.fail") {
		t.Fatalf("auth.login.fail not logged: %+v", entries)
	}
}

func TestLoginThrottled(t *testing.T) {
	e := newTestApp(t)
	last := 0
	for i := 0; i < 6; i++ {
		resp, _ := e.do(t, jsonReq("POST", "/auth/login", "", map[string]string{"email": "a@b.rw", "password": "nope-nope"}))
		last = resp.StatusCode
	}
	if last != fiber.StatusTooManyRequests {
		t.Fatalf("6th attempt should be throttled, got %d", last)
	}
}

func TestLoginSetsDisplayName(t *testing.T) {
	e := newTestApp(t)
	e.signUpAndLogin(t, "Kamali", "kamali@x.rw")
	resp, body := e.do(t, jsonReq("GET", "/settings/username", "", nil))
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(body, `"Kamali"`) {
		t.Fatalf("got %d %s", resp.StatusCode, body)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	e := newTestApp(t)
	for _, r := range []struct{ method, path string }{
		{"GET", "/me/listings"},
		{"GET", "/me/earnings"},
		{"DELETE", "/me/listings/abc"},
		{"GET", "/sell/wizard"},
		{"POST", "/auth/logout"},
		{"PUT", "/settings/username"},
	} {
		resp, _ := e.do(t, jsonReq(r.method, r.path, "", nil))
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s %s: want 401, got %d", r.method, r.path, resp.StatusCode)
		}
		resp, _ = e.do(t, jsonReq(r.method, r.path, "not-a-jwt", nil))
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s %s with bad token: want 401, got %d", r.method, r.path, resp.StatusCode)
		}
	}
}

func TestForgotPassword(t *testing.T) {
	e := newTestApp(t)
	resp, _ := e.do(t, jsonReq("POST", "/auth/forgot", "", map[string]string{"email": "nobody"}))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	resp, body := e.do(t, jsonReq("POST", "/auth/forgot", "", map[string]string{"email": "ghost@x.rw"}))
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(body, "If this email is registered") {
		t.Fatalf("got %d %s", resp.StatusCode, body)
	}
}

func TestLogout(t *testing.T) {
	e := newTestApp(t)
	tok := e.signUpAndLogin(t, "Aline", "aline@x.rw")
	resp, _ := e.do(t, jsonReq("POST", "/auth/logout", tok, nil))
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("want 204, got %d", resp.StatusCode)
	}
}
