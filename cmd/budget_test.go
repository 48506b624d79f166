package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finboard/internal/api"
	"github.com/theirongolddev/finboard/internal/config"
)

// budgetGateway stores a 60/25/15 split and records percentage updates.
type budgetGateway struct {
	mu      sync.Mutex
	updates []api.BudgetPercentages
}

func (g *budgetGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/budget":
		_, _ = w.Write([]byte(`{"monthlyIncome":80000,"needsPercentage":60,"wantsPercentage":25,"savingsPercentage":15}`))
	case r.Method == http.MethodPut && r.URL.Path == "/api/budget/percentages":
		var p api.BudgetPercentages
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		g.mu.Lock()
		g.updates = append(g.updates, p)
		g.mu.Unlock()
		_ = json.NewEncoder(w).Encode(p)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (g *budgetGateway) Updates() []api.BudgetPercentages {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]api.BudgetPercentages(nil), g.updates...)
}

// setSplitFlags marks the given budget set flags as passed and undoes it
// when the test ends.
func setSplitFlags(t *testing.T, values map[string]float64) {
	t.Helper()
	fs := budgetSetCmd.Flags()
	for _, name := range []string{"needs", "wants", "savings"} {
		f := fs.Lookup(name)
		def := f.DefValue
		t.Cleanup(func() {
			_ = f.Value.Set(def)
			f.Changed = false
		})
	}
	for name, v := range values {
		require.NoError(t, fs.Set(name, strconv.FormatFloat(v, 'f', -1, 64)))
	}
}

func budgetApp(t *testing.T) (*app, *budgetGateway, *bytes.Buffer) {
	t.Helper()
	gw := &budgetGateway{}
	srv := httptest.NewServer(gw)
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	return &app{
		cfg:    config.DefaultConfig(),
		client: api.New(api.Config{BaseURL: srv.URL + "/api"}),
		out:    &buf,
	}, gw, &buf
}

func TestBudgetSetWithoutFlagsChangesNothing(t *testing.T) {
	a, gw, _ := budgetApp(t)
	setSplitFlags(t, nil)

	err := runBudgetSet(context.Background(), a, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
	assert.Empty(t, gw.Updates())
}

func TestBudgetSetKeepsUnsetBuckets(t *testing.T) {
	a, gw, out := budgetApp(t)
	setSplitFlags(t, map[string]float64{"wants": 20, "savings": 20})

	require.NoError(t, runBudgetSet(context.Background(), a, nil))
	require.Len(t, gw.Updates(), 1)
	assert.Equal(t, api.BudgetPercentages{NeedsPercentage: 60, WantsPercentage: 20, SavingsPercentage: 20}, gw.Updates()[0])
	assert.Contains(t, out.String(), "60/20/20")
}

func TestBudgetSetRejectsBadMergedSplit(t *testing.T) {
	a, gw, _ := budgetApp(t)
	setSplitFlags(t, map[string]float64{"wants": 40})

	err := runBudgetSet(context.Background(), a, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add up to 100")
	assert.Empty(t, gw.Updates())
}
