package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/secscope/secscope/internal/shared/constants"
)

func TestNetProberFetch_CapturesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Add("Set-Cookie", "session=abc; Secure; HttpOnly")
		w.Header().Add("Set-Cookie", "theme=dark")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("<html>hello</html>"))
	}))
	defer ts.Close()

	p := NewNetProber(5*time.Second, 0, 0)
	result := p.Fetch(context.Background(), ts.URL)

	if result.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", result.Status)
	}
	if result.HTTPStatus != http.StatusTeapot {
		t.Errorf("expected non-2xx status to still be captured, got %d", result.HTTPStatus)
	}
	if result.Headers.Get("X-Frame-Options") != "DENY" {
		t.Errorf("missing header in result: %v", result.Headers)
	}
	if len(result.SetCookies) != 2 {
		t.Errorf("expected 2 raw Set-Cookie values, got %v", result.SetCookies)
	}
	if !strings.Contains(result.Body, "hello") {
		t.Errorf("unexpected body: %q", result.Body)
	}
}

func TestNetProberFetch_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	p := NewNetProber(2*time.Second, 0, 0)
	result := p.Fetch(context.Background(), ts.URL)

	if result.Status != StatusFailed {
		t.Fatalf("expected failed fetch against closed server, got %+v", result)
	}
}

func TestNetProberFetch_BoundsBodyRead(t *testing.T) {
	oversize := strings.Repeat("x", int(constants.MaxBodyBytes)+4096)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(oversize))
	}))
	defer ts.Close()

	p := NewNetProber(10*time.Second, 0, 0)
	result := p.Fetch(context.Background(), ts.URL)

	if result.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", result.Status)
	}
	if int64(len(result.Body)) != constants.MaxBodyBytes {
		t.Errorf("body not bounded: got %d bytes, want %d", len(result.Body), constants.MaxBodyBytes)
	}
}

func TestNetProberFetch_InvalidURL(t *testing.T) {
	p := NewNetProber(2*time.Second, 0, 0)
	result := p.Fetch(context.Background(), "http://\x7f invalid")

	if result.Status != StatusFailed {
		t.Fatalf("expected failed fetch for unparseable URL, got %+v", result)
	}
}

func TestNewNetProberDefaults(t *testing.T) {
	p := NewNetProber(0, 0, 0)

	if p.FetchTimeout != constants.DefaultFetchTimeout {
		t.Errorf("FetchTimeout = %v, want %v", p.FetchTimeout, constants.DefaultFetchTimeout)
	}
	if p.WhoisTimeout != constants.DefaultWhoisTimeout {
		t.Errorf("WhoisTimeout = %v, want %v", p.WhoisTimeout, constants.DefaultWhoisTimeout)
	}
	if p.MXTimeout != constants.DefaultMXTimeout {
		t.Errorf("MXTimeout = %v, want %v", p.MXTimeout, constants.DefaultMXTimeout)
	}
}
