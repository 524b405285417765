package cloud

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/WManage/api/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		w.Write([]byte(`{"success": true, "username": "tester", "userId": 42, "plants": []}`))
	}))
	defer server.Close()

	client := New("tester", "secret", WithBaseURL(server.URL))
	resp, err := client.Login(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || resp.Username != "tester" || resp.UserID != 42 {
		t.Errorf("got %+v", resp)
	}
}

func TestLoginFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	client := New("tester", "wrong", WithBaseURL(server.URL))
	if _, err := client.Login(context.Background()); err == nil {
		t.Fatal("expected error on failed login")
	}
}

func TestRequestCachesWithinTTL(t *testing.T) {
	var loginHits, plantListHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/WManage/api/login":
			atomic.AddInt32(&loginHits, 1)
			w.Write([]byte(`{"success": true}`))
		case "/WManage/web/config/plant/list/viewer":
			atomic.AddInt32(&plantListHits, 1)
			w.Write([]byte(`{"success": true, "rows": []}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New("tester", "secret", WithBaseURL(server.URL))
	ctx := context.Background()

	if _, err := client.Plants.ListPlants(ctx); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := client.Plants.ListPlants(ctx); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if got := atomic.LoadInt32(&loginHits); got != 1 {
		t.Errorf("login hits: got %d, want 1 (session should be reused)", got)
	}
	if got := atomic.LoadInt32(&plantListHits); got != 1 {
		t.Errorf("plant_list hits: got %d, want 1 (second call should be served from cache)", got)
	}
}

func TestRequestReLoginsOn401(t *testing.T) {
	var loginHits int32
	var runtimeHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/WManage/api/login":
			atomic.AddInt32(&loginHits, 1)
			w.Write([]byte(`{"success": true}`))
		case "/WManage/web/monitor/device/inverterRuntime":
			n := atomic.AddInt32(&runtimeHits, 1)
			if n == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"success": true}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New("tester", "secret", WithBaseURL(server.URL))
	if _, err := client.Devices.GetInverterRuntime(context.Background(), "SN1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&loginHits); got != 2 {
		t.Errorf("login hits: got %d, want 2 (initial + silent re-login after 401)", got)
	}
}
