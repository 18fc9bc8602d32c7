package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestTelegram(status int, capture *map[string]string) (*Telegram, *httptest.Server) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			r.ParseForm()
			for key, values := range r.PostForm {
				(*capture)[key] = values[0]
			}
			(*capture)["path"] = r.URL.Path
		}
		w.WriteHeader(status)
		w.Write([]byte(`{"ok":false}`))
	}))

	telegram := NewTelegram("test-token", server.Client(), 5*time.Second)
	telegram.baseURL = server.URL
	return telegram, server
}

func TestTelegram_SendSuccess(t *testing.T) {
	captured := make(map[string]string)
	telegram, server := newTestTelegram(http.StatusOK, &captured)
	defer server.Close()

	err := telegram.Send(context.Background(), " 1654552128 ", "*alert*")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if captured["path"] != "/bottest-token/sendMessage" {
		t.Errorf("Unexpected request path %q", captured["path"])
	}
	if captured["chat_id"] != "1654552128" {
		t.Errorf("Expected trimmed chat_id, got %q", captured["chat_id"])
	}
	if captured["parse_mode"] != "Markdown" {
		t.Errorf("Expected Markdown parse mode, got %q", captured["parse_mode"])
	}
	if captured["text"] != "*alert*" {
		t.Errorf("Expected message text passed through, got %q", captured["text"])
	}
}

func TestTelegram_ServerErrorIsTransient(t *testing.T) {
	telegram, server := newTestTelegram(http.StatusInternalServerError, nil)
	defer server.Close()

	err := telegram.Send(context.Background(), "123", "hello")
	if err == nil {
		t.Fatal("Expected error")
	}
	if IsPermanent(err) {
		t.Errorf("500 should be transient, got %v", err)
	}
}

func TestTelegram_RateLimitIsTransient(t *testing.T) {
	telegram, server := newTestTelegram(http.StatusTooManyRequests, nil)
	defer server.Close()

	err := telegram.Send(context.Background(), "123", "hello")
	if err == nil {
		t.Fatal("Expected error")
	}
	if IsPermanent(err) {
		t.Errorf("429 should be transient, got %v", err)
	}
}

func TestTelegram_BadRequestIsPermanent(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden} {
		telegram, server := newTestTelegram(status, nil)

		err := telegram.Send(context.Background(), "bad-chat", "hello")
		if err == nil {
			t.Fatalf("Expected error for status %d", status)
		}
		if !IsPermanent(err) {
			t.Errorf("%d should be permanent, got %v", status, err)
		}

		server.Close()
	}
}

func TestTelegram_NetworkErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	telegram := NewTelegram("test-token", server.Client(), 5*time.Second)
	telegram.baseURL = server.URL
	server.Close() // connection refused from here on

	err := telegram.Send(context.Background(), "123", "hello")
	if err == nil {
		t.Fatal("Expected error")
	}
	if IsPermanent(err) {
		t.Errorf("Network error should be transient, got %v", err)
	}
}
