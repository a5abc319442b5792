// ABOUTME: Tests for the API client
// ABOUTME: Covers auth headers, error taxonomy, and the 401 hook

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := New(server.URL)
	client.SetAuthorization("token-123")

	if _, err := client.ListSweets(context.Background()); err != nil {
		t.Fatalf("ListSweets returned error: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer token-123")
	}
}

func TestClientClearsAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := New(server.URL)
	client.SetAuthorization("token-123")
	client.SetAuthorization("")

	if _, err := client.ListSweets(context.Background()); err != nil {
		t.Fatalf("ListSweets returned error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty after clearing", gotAuth)
	}
}

func TestClientAnonymousByDefault(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := New(server.URL)
	if _, err := client.ListSweets(context.Background()); err != nil {
		t.Fatalf("ListSweets returned error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestLoginDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != "jane@example.com" {
			t.Errorf("email = %q, want jane@example.com", req["email"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tkn","user":{"id":"u1","name":"Jane","email":"jane@example.com","isAdmin":true}}`))
	}))
	defer server.Close()

	client := New(server.URL)
	resp, err := client.Login(context.Background(), "jane@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token != "tkn" {
		t.Errorf("Token = %q, want tkn", resp.Token)
	}
	if resp.User == nil || resp.User.Name != "Jane" || !resp.User.IsAdmin {
		t.Errorf("unexpected user: %+v", resp.User)
	}
}

func TestJSONErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"name is required"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.CreateSweet(context.Background(), &SweetInput{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "name is required" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "name is required")
	}
}

func TestJSONErrorResponseErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"email already registered"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Register(context.Background(), "Jane", "jane@example.com", "secret1")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Message != "email already registered" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "email already registered")
	}
}

func TestPlainTextErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded\n"))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.ListSweets(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", apiErr.Status)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "upstream exploded")
	}
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := New(serverURL)
	_, err := client.ListSweets(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if te.URL != serverURL {
		t.Errorf("URL = %q, want %q", te.URL, serverURL)
	}
}

func TestAuthRejectHookFiresOn401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	client.SetAuthorization("stale")
	rejected := false
	client.SetOnAuthReject(func() {
		rejected = true
		// The hook must be free to clear the token without deadlocking.
		client.SetAuthorization("")
	})

	_, err := client.ListSweets(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("expected 401 *Error, got %v", err)
	}
	if !rejected {
		t.Error("expected the auth-reject hook to fire on 401")
	}
	if client.Authorization() != "" {
		t.Error("expected hook to have cleared the token")
	}
}

func TestAuthRejectHookSilentOn403(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"admin only"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	client.SetAuthorization("valid-but-not-admin")
	rejected := false
	client.SetOnAuthReject(func() { rejected = true })

	err := client.DeleteSweet(context.Background(), "s1")
	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.Forbidden() {
		t.Fatalf("expected 403 *Error, got %v", err)
	}
	if rejected {
		t.Error("auth-reject hook must not fire on 403")
	}
}

func TestAuthRejectHookSilentOnAnonymousRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"login required"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	rejected := false
	client.SetOnAuthReject(func() { rejected = true })

	if _, err := client.ListSweets(context.Background()); err == nil {
		t.Fatal("expected 401 error")
	}
	if rejected {
		t.Error("a 401 on a request that carried no credentials must not fire the hook")
	}
}

func TestLoginSendsNoCredentials(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	client.SetAuthorization("stored-token")
	rejected := false
	client.SetOnAuthReject(func() { rejected = true })

	if _, err := client.Login(context.Background(), "jane@example.com", "wrongpw"); err == nil {
		t.Fatal("expected 401 error")
	}
	if gotAuth != "" {
		t.Errorf("login sent Authorization %q; the endpoint is unauthenticated", gotAuth)
	}
	if rejected {
		t.Error("a rejected login must not fire the auth-reject hook")
	}
	if client.Authorization() != "stored-token" {
		t.Errorf("client token = %q, want the stored session untouched", client.Authorization())
	}
}

func TestConcurrentAuthorizationChanges(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Requests pick up whatever token is set when they start: any
		// value ever set (or none) is legal, partial writes are not.
		auth := r.Header.Get("Authorization")
		if auth != "" && !strings.HasPrefix(auth, "Bearer tok-") {
			t.Errorf("torn Authorization header %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := New(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				client.SetAuthorization(fmt.Sprintf("tok-%d-%d", i, j))
				client.Authorization()
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if _, err := client.ListSweets(context.Background()); err != nil {
					t.Errorf("ListSweets returned error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNonJSONSuccessResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>proxy splash page</html>"))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.ListSweets(context.Background())
	if err == nil {
		t.Fatal("expected error for a non-JSON success response")
	}
	if !strings.Contains(err.Error(), "proxy splash page") {
		t.Errorf("error = %q, want it to carry the raw response text", err.Error())
	}
}

func TestRequestCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(server.URL)
	_, err := client.ListSweets(ctx)
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
	if err.Error() != "request canceled" {
		t.Errorf("error = %q, want %q", err.Error(), "request canceled")
	}
}

func TestPurchasePathAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sweets/abc/purchase" {
			t.Errorf("path = %q, want /sweets/abc/purchase", r.URL.Path)
		}
		var req map[string]int
		json.NewDecoder(r.Body).Decode(&req)
		if req["quantity"] != 3 {
			t.Errorf("quantity = %d, want 3", req["quantity"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc","name":"Fudge","quantity":7,"price":2.5}`))
	}))
	defer server.Close()

	client := New(server.URL)
	sweet, err := client.PurchaseSweet(context.Background(), "abc", 3)
	if err != nil {
		t.Fatalf("PurchaseSweet returned error: %v", err)
	}
	if sweet.Quantity != 7 {
		t.Errorf("Quantity = %d, want 7", sweet.Quantity)
	}
}

func TestDeleteSendsNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q, want DELETE", r.Method)
		}
		if r.Header.Get("Content-Type") != "" {
			t.Errorf("unexpected Content-Type %q on body-less request", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL)
	if err := client.DeleteSweet(context.Background(), "s1"); err != nil {
		t.Fatalf("DeleteSweet returned error: %v", err)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := New(server.URL)
	if _, err := client.ListSweets(context.Background()); err != nil {
		t.Fatalf("ListSweets returned error: %v", err)
	}
	if gotID == "" {
		t.Error("expected X-Request-Id header on every request")
	}
}
