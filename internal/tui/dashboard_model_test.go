package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetfocus/fleetfocus/internal/api"
	"github.com/fleetfocus/fleetfocus/internal/fleet"
)

func loadedDashboard(t *testing.T, rows []fleet.SummaryRow) dashboardModel {
	t.Helper()
	m := newDashboardModel(testClient(), zerolog.Nop())
	updated, _ := m.Update(dashboardSummaryMsg{token: m.summary.token, rows: rows})
	return updated.(dashboardModel)
}

// TestDashboard_LoadsOnEntry verifies the summary slot starts Pending.
func TestDashboard_LoadsOnEntry(t *testing.T) {
	m := newDashboardModel(testClient(), zerolog.Nop())

	assert.True(t, m.summary.pending())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading fleet summary")
}

// TestDashboard_RendersSummaryCard covers the summary scenario: one
// category card with all four counters.
func TestDashboard_RendersSummaryCard(t *testing.T) {
	m := loadedDashboard(t, []fleet.SummaryRow{
		{Category: "Excavator", Total: 5, Available: 3, InUse: 2, Maintenance: 0},
	})

	view := m.View()
	assert.Contains(t, view, "Excavator")
	assert.Contains(t, view, "5 Total Units")
	assert.Contains(t, view, "3 Available")
	assert.Contains(t, view, "2 In-Use")
	assert.Contains(t, view, "0 Maintenance")
}

// TestDashboard_FailureShowsErrorAndNoCards verifies the error state
// replaces the card area entirely.
func TestDashboard_FailureShowsErrorAndNoCards(t *testing.T) {
	m := newDashboardModel(testClient(), zerolog.Nop())

	updated, _ := m.Update(dashboardSummaryMsg{
		token: m.summary.token,
		err:   &api.TransportError{Op: "summary", Err: assert.AnError},
	})
	m = updated.(dashboardModel)

	view := m.View()
	assert.Contains(t, view, "Error:")
	assert.NotContains(t, view, "Total Units")
}

// TestDashboard_StaleSummaryDropped verifies a superseded reload cannot
// clobber the newer request's state.
func TestDashboard_StaleSummaryDropped(t *testing.T) {
	m := newDashboardModel(testClient(), zerolog.Nop())
	staleToken := m.summary.token

	// User hits reload before the first fetch lands.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	m = updated.(dashboardModel)
	require.NotEqual(t, staleToken, m.summary.token)

	updated, _ = m.Update(dashboardSummaryMsg{
		token: staleToken,
		rows:  []fleet.SummaryRow{{Category: "Stale", Total: 1}},
	})
	m = updated.(dashboardModel)

	assert.True(t, m.summary.pending())
	assert.NotContains(t, m.View(), "Stale")
}

// TestDashboard_EnterNavigatesToCategory verifies card selection.
func TestDashboard_EnterNavigatesToCategory(t *testing.T) {
	m := loadedDashboard(t, []fleet.SummaryRow{
		{Category: "Excavator", Total: 5},
		{Category: "Crane", Total: 2},
	})

	// Move to the second card and open it.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(dashboardModel)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(navigateMsg)
	require.True(t, ok)
	assert.Equal(t, ScreenCategory, msg.ref.Kind)
	assert.Equal(t, "Crane", msg.ref.Param(ParamCategory))
}

// TestDashboard_AnalyticsShortcuts verifies the sibling screen keys.
func TestDashboard_AnalyticsShortcuts(t *testing.T) {
	m := loadedDashboard(t, nil)

	tests := []struct {
		key  rune
		want ScreenKind
	}{
		{'s', ScreenSustainability},
		{'d', ScreenDemandForecast},
		{'b', ScreenBim},
	}
	for _, tc := range tests {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tc.key}})
		require.NotNil(t, cmd, "key %q", tc.key)
		msg, ok := cmd().(navigateMsg)
		require.True(t, ok, "key %q", tc.key)
		assert.Equal(t, tc.want, msg.ref.Kind)
	}
}
