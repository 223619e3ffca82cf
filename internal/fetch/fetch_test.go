package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDocumentSendsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><p class="x">hello</p></body></html>`))
	}))
	defer server.Close()

	c := NewClient(WithHTTPClient(server.Client()), WithLogger(zaptest.NewLogger(t).Sugar()))
	doc, err := c.Document(context.Background(), server.URL, time.Second)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, gotAgent)
	assert.Equal(t, "hello", doc.Find("p.x").Text())
}

func TestDocumentCustomUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	c := NewClient(WithHTTPClient(server.Client()), WithUserAgent("digest-bot/1.0"))
	_, err := c.Document(context.Background(), server.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "digest-bot/1.0", gotAgent)
}

func TestDocumentStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(WithHTTPClient(server.Client()))
	_, err := c.Document(context.Background(), server.URL, time.Second)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestDocumentTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewClient(WithHTTPClient(server.Client()))
	_, err := c.Document(context.Background(), server.URL, 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestDocumentDecodesLatin2(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-2")
		// "Treść" in ISO-8859-2: ś is 0xB6
		w.Write([]byte("<html><body><td>Tre\xb6\xe6</td></body></html>"))
	}))
	defer server.Close()

	c := NewClient(WithHTTPClient(server.Client()))
	doc, err := c.Document(context.Background(), server.URL, time.Second)
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), "Treść")
}

func TestPacer(t *testing.T) {
	p := NewPacer(40 * time.Millisecond)
	assert.Equal(t, 40*time.Millisecond, p.Interval())

	ctx := context.Background()
	start := time.Now()
	require.NoError(t, p.Wait(ctx))
	require.NoError(t, p.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestPacerCountsFromDone(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, p.Wait(ctx))
	// work outlasting the interval must not use up the pause that follows it
	time.Sleep(80 * time.Millisecond)
	p.Done()

	finished := time.Now()
	require.NoError(t, p.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(finished), 40*time.Millisecond)
}

func TestPacerDisabled(t *testing.T) {
	p := NewPacer(0)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Wait(ctx))
		p.Done()
	}
	assert.Less(t, time.Since(start), time.Second)

	var nilPacer *Pacer
	assert.NoError(t, nilPacer.Wait(ctx))
	nilPacer.Done()
}
