package records

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	pages := [][]any{
		{map[string]any{"id": "j1", "title": "Frontend", "status": "active"}, map[string]any{"title": "broken"}},
		{map[string]any{"id": "j2", "title": "Backend", "status": "active"}},
		{map[string]any{"id": "j3", "title": "QA", "status": "closed"}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("per_page") != perPage {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		body := ItemResponse{Items: pages[page], Found: 4, Pages: len(pages), Page: page, PerPage: 100}

		// the last page comes back compressed
		if page == len(pages)-1 {
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			defer gz.Close()
			_ = json.NewEncoder(gz).Encode(body)
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("/users/u1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "name": "Thandi", "skills": []string{"Go"}})
	})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClientJobsFollowsPages(t *testing.T) {
	server := newTestAPI(t)
	client := NewClient(server.URL+"/", "secret", zap.NewNop())

	jobs, err := client.Jobs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"j1", "j2", "j3"}, jobs.IDs())
}

func TestClientJobsBadStatus(t *testing.T) {
	server := newTestAPI(t)
	client := NewClient(server.URL, "wrong", zap.NewNop())

	_, err := client.Jobs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}

func TestClientUser(t *testing.T) {
	server := newTestAPI(t)
	client := NewClient(server.URL, "secret", zap.NewNop())

	user, err := client.User(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Thandi", user.Name)
	assert.Equal(t, []string{"Go"}, user.Skills)

	_, err = client.User(context.Background(), "u404")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestClientHonoursContext(t *testing.T) {
	server := newTestAPI(t)
	client := NewClient(server.URL, "secret", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Jobs(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
