package rosterapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/riskibarqy/rosterview/internal/domain/player"
	"github.com/riskibarqy/rosterview/internal/platform/resilience"
	"github.com/riskibarqy/rosterview/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freeAgentUpstream serves total free agents in pages of player.FreeAgentPageSize.
func freeAgentUpstream(t *testing.T, total int) (*httptest.Server, func() []int) {
	t.Helper()

	var mu sync.Mutex
	var starts []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, err := strconv.Atoi(r.URL.Query().Get("start"))
		assert.NoError(t, err)
		mu.Lock()
		starts = append(starts, start)
		mu.Unlock()

		items := make([]string, 0, player.FreeAgentPageSize)
		for i := start; i < min(start+player.FreeAgentPageSize, total); i++ {
			items = append(items, `{"name": "FA-`+strconv.Itoa(i)+`", "positions": "C"}`)
		}
		_, _ = w.Write([]byte(`{"free_agents": [` + strings.Join(items, ",") + `], "context": {}}`))
	}))
	t.Cleanup(server.Close)

	return server, func() []int {
		mu.Lock()
		defer mu.Unlock()
		out := append([]int(nil), starts...)
		sort.Ints(out)
		return out
	}
}

func TestFreeAgents_LimitSpanningUpstreamPages(t *testing.T) {
	server, requestedStarts := freeAgentUpstream(t, 100)
	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})
	service := usecase.NewRosterViewService(client, nil, usecase.RosterViewConfig{FreeAgentMaxLimit: 100}, nil)

	got, err := service.FreeAgents(context.Background(), usecase.FreeAgentInput{
		Week:     1,
		MyTeam:   "a",
		Opponent: "b",
		Limit:    30,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, got.Limit)
	assert.Len(t, got.Table.Rows, 30)
	assert.Equal(t, 30, got.NextStart)
	assert.True(t, got.HasMore)
	assert.Equal(t, []int{0, 20}, requestedStarts())
}

func TestFreeAgents_ShortFinalUpstreamPage(t *testing.T) {
	server, requestedStarts := freeAgentUpstream(t, 45)
	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})
	service := usecase.NewRosterViewService(client, nil, usecase.RosterViewConfig{FreeAgentMaxLimit: 100}, nil)

	got, err := service.FreeAgents(context.Background(), usecase.FreeAgentInput{
		Week:     1,
		MyTeam:   "a",
		Opponent: "b",
		Start:    30,
	})
	require.NoError(t, err)

	assert.Equal(t, player.FreeAgentPageSize, got.Limit)
	assert.Len(t, got.Table.Rows, 15)
	assert.Equal(t, 45, got.NextStart)
	assert.False(t, got.HasMore)
	assert.Equal(t, []int{30}, requestedStarts())
}
