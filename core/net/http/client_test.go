package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestClient_Request_GET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != MethodGet {
			t.Errorf("Expected GET method, got %s", r.Method)
		}
		if r.Header.Get(HeaderUserAgent) != "test-agent/1.0" {
			t.Errorf("Expected user agent, got %q", r.Header.Get(HeaderUserAgent))
		}
		w.Header().Set(HeaderContentType, ContentTypeJSON)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := New()
	resp, err := client.Get(server.URL, WithUserAgent("test-agent/1.0"))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("Unexpected body %q", resp.Body)
	}
}

func TestClient_Request_POST_Form(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != MethodPost {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if ct := r.Header.Get(HeaderContentType); ct != ContentTypeForm {
			t.Errorf("Expected Content-Type %s, got %s", ContentTypeForm, ct)
		}
		body, _ := io.ReadAll(r.Body)
		io.WriteString(w, string(body))
	}))
	defer server.Close()

	form := url.Values{"a": {"1"}, "b": {"x y"}}
	resp, err := New().Post(server.URL, form)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if string(resp.Body) != "a=1&b=x+y" {
		t.Errorf("Unexpected echoed body %q", resp.Body)
	}
}

func TestClient_Request_POST_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get(HeaderContentType); ct != ContentTypeJSON {
			t.Errorf("Expected Content-Type %s, got %s", ContentTypeJSON, ct)
		}
		body, _ := io.ReadAll(r.Body)
		io.WriteString(w, string(body))
	}))
	defer server.Close()

	resp, err := New().Post(server.URL, map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if string(resp.Body) != `{"k":"v"}` {
		t.Errorf("Unexpected echoed body %q", resp.Body)
	}
}

func TestClient_Request_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "oops")
	}))
	defer server.Close()

	resp, err := New().Get(server.URL)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != 500 || string(resp.Body) != "oops" {
		t.Errorf("Unexpected response %d %q", resp.StatusCode, resp.Body)
	}
}

func TestClient_Request_InvalidURL(t *testing.T) {
	_, err := New().Get("http://exa mple.com/")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Expected ErrInvalidRequest, got %v", err)
	}
}

func TestClient_Request_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	_, err := New().Get(server.URL, WithTimeout(50*time.Millisecond))
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestClient_Request_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, strings.Repeat("x", 64))
	}))
	defer server.Close()

	resp, err := New(WithMaxBodySize(16)).Get(server.URL)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("Expected ErrBodyTooLarge, got %v", err)
	}
	if resp == nil || resp.StatusCode != 200 {
		t.Errorf("Expected the response status to be reported")
	}
}

func TestClient_Redirects(t *testing.T) {
	var target *httptest.Server
	target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, target.URL+"/new", http.StatusFound)
			return
		}
		io.WriteString(w, "moved here")
	}))
	defer target.Close()

	resp, err := New().Get(target.URL + "/old")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if string(resp.Body) != "moved here" {
		t.Errorf("Expected redirect to be followed, got %d %q", resp.StatusCode, resp.Body)
	}

	resp, err = New(WithFollowRedirects(false)).Get(target.URL + "/old")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("Expected 302 when redirects are disabled, got %d", resp.StatusCode)
	}
}

func TestClient_TLSVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "secure")
	}))
	defer server.Close()

	if _, err := New().Get(server.URL); err == nil {
		t.Error("Expected certificate verification to reject the test server")
	}

	resp, err := New(WithInsecureSkipVerify(true)).Get(server.URL)
	if err != nil {
		t.Fatalf("Request with verification disabled failed: %v", err)
	}
	if string(resp.Body) != "secure" {
		t.Errorf("Unexpected body %q", resp.Body)
	}
}

func TestClient_WithClientIsNotMutated(t *testing.T) {
	base := &http.Client{Timeout: time.Second}
	cli := New(WithClient(base), WithFollowRedirects(false))

	if base.CheckRedirect != nil {
		t.Error("base client must not be mutated")
	}
	if cli.HTTPClient().CheckRedirect == nil {
		t.Error("derived client should carry the redirect policy")
	}
	if cli.HTTPClient().Timeout != time.Second {
		t.Error("derived client should keep the base timeout")
	}
}
