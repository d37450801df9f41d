package boardapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scheduleboard/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestClient_GetScheduleSections(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/sections/ev-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"sec-1","event_id":"ev-1","name":"Day One","order":1,"date":"2026-03-01"},
			{"id":"sec-2","event_id":"ev-1","name":"Day Two","order":2}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	sections, err := client.GetScheduleSections(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	require.Equal(t, "Day One", sections[0].Name)
	require.Equal(t, "2026-03-01", sections[0].Date)
	require.Equal(t, 2, sections[1].Order)
}

func TestClient_GetSessions(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sessions/ev-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id":"s-1","event_id":"ev-1","section_id":"sec-1","title":"Opening",
			"description":"","start_time":"2026-03-01T09:00:00Z","end_time":"2026-03-01T10:00:00Z",
			"tags":["keynote"],"attendees":["Ada","Grace"]
		}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	sessions, err := client.GetSessions(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "Opening", sessions[0].Title)
	require.True(t, start.Equal(sessions[0].StartTime))
	require.Equal(t, []string{"Ada", "Grace"}, sessions[0].Attendees)
}

func TestClient_ErrorsWrapErrFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client())
		_, err := client.GetScheduleSections(ctx, "ev-1")
		require.ErrorIs(t, err, domain.ErrFetch)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client())
		_, err := client.GetSessions(ctx, "ev-1")
		require.ErrorIs(t, err, domain.ErrFetch)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", nil)
		_, err := client.GetScheduleSections(ctx, "ev-1")
		require.ErrorIs(t, err, domain.ErrFetch)
	})

	t.Run("event id is path-escaped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/sections/ev%2F1", r.URL.EscapedPath())
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client())
		sections, err := client.GetScheduleSections(ctx, "ev/1")
		require.NoError(t, err)
		require.Empty(t, sections)
	})
}
