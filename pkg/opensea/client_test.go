package opensea

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nftarchive/pkg/config"
	errs "nftarchive/pkg/errors"
	"nftarchive/pkg/logger"
)

// mockOpenSea serves canned listing pages keyed by continuation token
type mockOpenSea struct {
	server *httptest.Server
	pages  map[string]string // next token ("" for first page) -> response body

	mu       sync.Mutex
	requests []*http.Request
}

func newMockOpenSea(t *testing.T, pages map[string]string) *mockOpenSea {
	m := &mockOpenSea{pages: pages}
	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r)
		m.mu.Unlock()

		body, ok := m.pages[r.URL.Query().Get(NextParam)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockOpenSea) requestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func newTestClient(baseURL string, log logger.Logger) *Client {
	return NewClient(&config.OpenSeaConfig{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		UserAgent: "nftarchive-test",
	}, log)
}

func TestFetchCollectionFollowsPagination(t *testing.T) {
	mock := newMockOpenSea(t, map[string]string{
		"":   `{"nfts":[{"name":"A","image_url":"http://h/a.svg"}],"next":"T"}`,
		"T":  `{"nfts":[{"name":"B","image_url":"http://h/b.svg"},{"name":"C","image_url":"http://h/c.svg"}],"next":"T2"}`,
		"T2": `{"nfts":[{"name":"D","image_url":"http://h/d.svg"}]}`,
	})
	log := logger.NewTestLogger()
	client := newTestClient(mock.server.URL, log)

	items, err := client.FetchCollection(context.Background(), "toadz")
	require.NoError(t, err)

	assert.Equal(t, 3, mock.requestCount())
	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)

	// Every page request carries the API key on the collection endpoint
	for _, r := range mock.requests {
		assert.Equal(t, "test-key", r.Header.Get(APIKeyHeader))
		assert.Equal(t, "/api/v2/collection/toadz/nfts", r.URL.Path)
	}
	assert.Empty(t, mock.requests[0].URL.Query().Get(NextParam))
	assert.Equal(t, "T", mock.requests[1].URL.Query().Get(NextParam))
	assert.Equal(t, "T2", mock.requests[2].URL.Query().Get(NextParam))

	// One progress observation per page with the running total
	progress := log.GetMessagesByText("Collection page fetched")
	require.Len(t, progress, 3)
	assert.Equal(t, 1, progress[0].Fields["total"])
	assert.Equal(t, 3, progress[1].Fields["total"])
	assert.Equal(t, 4, progress[2].Fields["total"])
}

func TestFetchCollectionStopsOnEmptyOrNullToken(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty string", `{"nfts":[{"name":"A","image_url":"u"}],"next":""}`},
		{"null", `{"nfts":[{"name":"A","image_url":"u"}],"next":null}`},
		{"absent", `{"nfts":[{"name":"A","image_url":"u"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockOpenSea(t, map[string]string{"": tt.body})
			client := newTestClient(mock.server.URL, nil)

			items, err := client.FetchCollection(context.Background(), "x")
			require.NoError(t, err)
			assert.Len(t, items, 1)
			assert.Equal(t, 1, mock.requestCount())
		})
	}
}

func TestFetchCollectionKeepsDuplicates(t *testing.T) {
	mock := newMockOpenSea(t, map[string]string{
		"":  `{"nfts":[{"name":"A","image_url":"u"}],"next":"n"}`,
		"n": `{"nfts":[{"name":"A","image_url":"u"}]}`,
	})
	client := newTestClient(mock.server.URL, nil)

	items, err := client.FetchCollection(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFetchCollectionMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing nfts", `{"next":"T"}`},
		{"null nfts", `{"nfts":null}`},
		{"nfts not array", `{"nfts":"many"}`},
		{"next not string", `{"nfts":[],"next":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockOpenSea(t, map[string]string{"": tt.body})
			client := newTestClient(mock.server.URL, nil)

			_, err := client.FetchCollection(context.Background(), "x")
			require.Error(t, err)
			assert.True(t, errs.IsType(err, errs.ErrorTypeMalformedResponse), "got %v", err)
		})
	}
}

func TestFetchCollectionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"invalid api key"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, logger.NewTestLogger())
	_, err := client.FetchCollection(context.Background(), "x")
	require.Error(t, err)

	var apiErr *errs.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, errs.ErrorTypeAPI, apiErr.Type)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Code)
	assert.Contains(t, apiErr.Message, "invalid api key")
}

func TestFetchCollectionFailsMidway(t *testing.T) {
	// Second page token is unknown to the server, so it answers 404
	mock := newMockOpenSea(t, map[string]string{
		"": `{"nfts":[{"name":"A","image_url":"u"}],"next":"gone"}`,
	})
	client := newTestClient(mock.server.URL, nil)

	items, err := client.FetchCollection(context.Background(), "x")
	require.Error(t, err)
	assert.Nil(t, items)
	assert.True(t, errs.IsType(err, errs.ErrorTypeAPI))
	assert.Equal(t, 2, mock.requestCount())
}

func TestFetchCollectionNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := newTestClient(url, nil)
	_, err := client.FetchCollection(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeNetwork))
}

func TestFetchCollectionRejectsEmptyIdentifier(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", nil)
	_, err := client.FetchCollection(context.Background(), "  ")
	assert.True(t, errs.IsType(err, errs.ErrorTypeConfig))
}

func TestFetchCollectionHonorsContext(t *testing.T) {
	mock := newMockOpenSea(t, map[string]string{"": `{"nfts":[]}`})
	client := newTestClient(mock.server.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchCollection(ctx, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestItemPassThrough(t *testing.T) {
	body := `{"nfts":[{"identifier":"42","name":"A","image_url":"http://h/a.svg","traits":[{"k":"v"}]}]}`
	mock := newMockOpenSea(t, map[string]string{"": body})
	client := newTestClient(mock.server.URL, nil)

	items, err := client.FetchCollection(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, items, 1)

	id, ok := items[0].Field("identifier")
	require.True(t, ok)
	assert.JSONEq(t, `"42"`, string(id))

	out, err := json.Marshal(items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"identifier":"42","name":"A","image_url":"http://h/a.svg","traits":[{"k":"v"}]}`, string(out))
}

func TestItemBuiltInCode(t *testing.T) {
	item := Item{Name: "A", ImageURL: "http://h/a.svg"}
	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"A","image_url":"http://h/a.svg"}`, string(out))

	_, ok := item.Field("name")
	assert.False(t, ok)
}

func TestItemNullName(t *testing.T) {
	var item Item
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"image_url":"u"}`), &item))
	assert.Equal(t, "", item.Name)
	assert.Equal(t, "u", item.ImageURL)
}

func TestFetchImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(APIKeyHeader), "image hosts must not receive the API key")
		if r.URL.Path == "/a.svg" {
			w.Header().Set("Content-Type", "image/svg+xml")
			fmt.Fprint(w, `<svg/>`)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient("http://unused", nil)

	data, err := client.FetchImage(context.Background(), server.URL+"/a.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = client.FetchImage(context.Background(), server.URL+"/missing.svg")
	assert.True(t, errs.IsType(err, errs.ErrorTypeAPI))

	_, err = client.FetchImage(context.Background(), "")
	assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidItem))
}

func TestGetCollectionNFTsURL(t *testing.T) {
	assert.Equal(t, "https://api.opensea.io/api/v2/collection/toadz/nfts",
		GetCollectionNFTsURL("https://api.opensea.io/", "toadz", ""))
	assert.Equal(t, "https://api.opensea.io/api/v2/collection/toadz/nfts?next=a%2Bb",
		GetCollectionNFTsURL("https://api.opensea.io", "toadz", "a+b"))
	assert.Equal(t, "http://h/api/v2/collection/a%2Fb/nfts",
		GetCollectionNFTsURL("http://h", "a/b", ""))
	assert.Equal(t, "https://opensea.io/collection/toadz", GetCollectionPageURL("toadz"))
}
