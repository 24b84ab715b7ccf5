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

func loadedCategory(t *testing.T, category string, records []fleet.EquipmentRecord) categoryModel {
	t.Helper()
	m := newCategoryModel(testClient(), zerolog.Nop(), category)
	updated, _ := m.Update(categoryListMsg{token: m.list.token, records: records})
	return updated.(categoryModel)
}

// TestCategory_LoadsOnEntry verifies the list slot starts Pending.
func TestCategory_LoadsOnEntry(t *testing.T) {
	m := newCategoryModel(testClient(), zerolog.Nop(), "Excavator")

	assert.True(t, m.list.pending())
	assert.Contains(t, m.View(), "Loading equipment")
}

// TestCategory_FilterProjection verifies filter keys narrow the table
// without touching the source records.
func TestCategory_FilterProjection(t *testing.T) {
	m := loadedCategory(t, "Excavator", []fleet.EquipmentRecord{
		{EquipmentID: "EX-1", RawStatus: "Available"},
		{EquipmentID: "EX-2", RawStatus: "In-Use"},
		{EquipmentID: "EX-3", RawStatus: "Available"},
	})
	require.Len(t, m.visible, 3)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = updated.(categoryModel)

	assert.Equal(t, fleet.FilterAvailable, m.filter)
	require.Len(t, m.visible, 2)
	assert.Equal(t, "EX-1", m.visible[0].EquipmentID)
	assert.Equal(t, "EX-3", m.visible[1].EquipmentID)
	assert.Len(t, m.list.value, 3, "source records must stay intact")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updated.(categoryModel)
	assert.Len(t, m.visible, 3)
}

// TestCategory_EmptyProjectionPlaceholder covers the "no equipment
// matches" scenario: an In-Use-only fleet filtered to Available.
func TestCategory_EmptyProjectionPlaceholder(t *testing.T) {
	m := loadedCategory(t, "Excavator", []fleet.EquipmentRecord{
		{EquipmentID: "EX-1", RawStatus: "In-Use"},
	})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = updated.(categoryModel)

	view := m.View()
	assert.Contains(t, view, "No equipment matches")
	assert.NotContains(t, view, "EX-1")
}

// TestCategory_StaleResponseDropped verifies the token guard at the model
// level.
func TestCategory_StaleResponseDropped(t *testing.T) {
	m := newCategoryModel(testClient(), zerolog.Nop(), "Excavator")

	updated, _ := m.Update(categoryListMsg{
		token:   "not-the-current-token",
		records: []fleet.EquipmentRecord{{EquipmentID: "EX-9"}},
	})
	m = updated.(categoryModel)

	assert.True(t, m.list.pending())
	assert.Empty(t, m.visible)
}

// TestCategory_FailureReplacesScreen verifies a load-on-entry failure
// shows the error alone.
func TestCategory_FailureReplacesScreen(t *testing.T) {
	m := newCategoryModel(testClient(), zerolog.Nop(), "Excavator")

	updated, _ := m.Update(categoryListMsg{
		token: m.list.token,
		err:   &api.SchemaError{Op: "equipment-by-type"},
	})
	m = updated.(categoryModel)

	view := m.View()
	assert.Contains(t, view, "invalid data format")
	assert.NotContains(t, view, "Filter:")
}

// TestCategory_EnterOpensVehicleWithBackRef verifies the vehicle screen
// receives both the unit id and the category back-reference.
func TestCategory_EnterOpensVehicleWithBackRef(t *testing.T) {
	m := loadedCategory(t, "Excavator", []fleet.EquipmentRecord{
		{EquipmentID: "EX-1", RawStatus: "Available"},
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(navigateMsg)
	require.True(t, ok)
	assert.Equal(t, ScreenVehicle, msg.ref.Kind)
	assert.Equal(t, "EX-1", msg.ref.Param(ParamEquipmentID))
	assert.Equal(t, "Excavator", msg.ref.Param(ParamCategory))
}

// TestCategory_EscReturnsToDashboard verifies back navigation.
func TestCategory_EscReturnsToDashboard(t *testing.T) {
	m := loadedCategory(t, "Excavator", nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)

	msg, ok := cmd().(navigateMsg)
	require.True(t, ok)
	assert.Equal(t, ScreenDashboard, msg.ref.Kind)
}
