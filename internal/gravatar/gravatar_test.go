package gravatar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)

	url, err := client.Lookup(context.Background(), " Valeri@Example.com ")
	require.NoError(t, err)

	// md5 of the trimmed, lowercased address.
	assert.Equal(t, "/50229e52e7316c208a4af23ae9cae409", gotPath)
	assert.Equal(t, "d=404", gotQuery)
	assert.Equal(t, srv.URL+"/50229e52e7316c208a4af23ae9cae409", url)
}

func TestLookupNoGravatar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)

	_, err := client.Lookup(context.Background(), "nobody@example.com")
	assert.Error(t, err)
}

func TestLookupTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := New(srv.URL, 2*time.Second)

	_, err := client.Lookup(context.Background(), "nobody@example.com")
	assert.Error(t, err)
}
