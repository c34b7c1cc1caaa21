package ocr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestAzure(t *testing.T, handler http.HandlerFunc) *Azure {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewAzure(Config{AzureEndpoint: srv.URL, AzureKey: "test-key"}, NewStats(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAzureOcrJoinsBlockLines(t *testing.T) {
	a := newTestAzure(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			t.Errorf("missing subscription key header")
		}
		if r.Header.Get("Content-Type") != "application/octet-stream" {
			t.Errorf("content-type = %q", r.Header.Get("Content-Type"))
		}
		w.Write([]byte(`{"readResult":{"blocks":[{"lines":[{"text":"first"},{"text":"second"}]},{"lines":[{"text":"third"}]}]}}`))
	})

	text, err := a.Ocr(context.Background(), []byte("img"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "first\nsecond\nthird" {
		t.Fatalf("text = %q", text)
	}
}

func TestAzureOcrEmptyReadResult(t *testing.T) {
	a := newTestAzure(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	text, err := a.Ocr(context.Background(), []byte("img"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestAzureOcrServerErrorIsRetryable(t *testing.T) {
	a := newTestAzure(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := a.Ocr(context.Background(), []byte("img"))
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestAzureOcrApiError(t *testing.T) {
	a := newTestAzure(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":"InvalidImage","message":"too small"}}`))
	})

	if _, err := a.Ocr(context.Background(), []byte("img")); err == nil {
		t.Fatal("expected api error")
	}
}
