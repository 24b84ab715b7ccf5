package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fleetfocus/fleetfocus/internal/api"
	"github.com/fleetfocus/fleetfocus/internal/fleet"
)

// Completion messages for the vehicle screen's request slots.
type (
	vehicleDetailMsg struct {
		token string
		rec   *fleet.EquipmentRecord
		err   error
	}
	vehicleAvailabilityMsg struct {
		token string
		pred  *fleet.AvailabilityPrediction
		err   error
	}
	vehiclePriceMsg struct {
		token string
		pred  *fleet.PricePrediction
		err   error
	}
	vehicleBehaviorMsg struct {
		token    string
		analysis *fleet.BehaviorAnalysis
		err      error
	}
	vehicleReturnedMsg struct {
		token string
		err   error
	}
)

// vehicleInput names which on-demand action is collecting text input.
type vehicleInput int

const (
	inputNone vehicleInput = iota
	inputDate
	inputDays
)

// vehicleModel shows one unit. The detail slot loads on entry; the
// prediction and analysis slots stay Idle until the user triggers them.
// Each section renders from its own slot, so a slow analysis never blocks
// the telemetry that is already loaded.
type vehicleModel struct {
	client      *api.Client
	logger      zerolog.Logger
	equipmentID string
	category    string // back-reference for Esc navigation

	detail       lifecycle[*fleet.EquipmentRecord]
	availability lifecycle[*fleet.AvailabilityPrediction]
	price        lifecycle[*fleet.PricePrediction]
	behavior     lifecycle[*fleet.BehaviorAnalysis]
	returned     lifecycle[struct{}]

	input     vehicleInput
	dateInput textinput.Model
	daysInput textinput.Model

	// futureDate / durationDays echo the submitted inputs for display next
	// to their prediction results.
	futureDate   string
	durationDays int

	spin   spinner.Model
	width  int
	height int
}

func newVehicleModel(client *api.Client, logger zerolog.Logger, equipmentID, category string) vehicleModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSpinner)

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12

	days := textinput.New()
	days.Placeholder = "days"
	days.CharLimit = 3
	days.Width = 5

	m := vehicleModel{
		client:      client,
		logger:      logger,
		equipmentID: equipmentID,
		category:    category,
		dateInput:   date,
		daysInput:   days,
		spin:        s,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.detail.start()
	return m
}

// Init issues the load-on-entry detail fetch. Predictions and analysis
// wait for explicit user actions.
func (m vehicleModel) Init() tea.Cmd {
	return tea.Batch(m.fetchDetail(m.detail.token), m.spin.Tick)
}

func (m vehicleModel) fetchDetail(token string) tea.Cmd {
	client := m.client
	id := m.equipmentID
	return func() tea.Msg {
		rec, err := client.EquipmentByID(context.Background(), id)
		return vehicleDetailMsg{token: token, rec: rec, err: err}
	}
}

func (m vehicleModel) fetchAvailability(token, futureDate string) tea.Cmd {
	client := m.client
	id := m.equipmentID
	return func() tea.Msg {
		pred, err := client.PredictAvailability(context.Background(), id, futureDate)
		return vehicleAvailabilityMsg{token: token, pred: pred, err: err}
	}
}

func (m vehicleModel) fetchPrice(token string, engineHours float64, durationDays int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		pred, err := client.PredictPrice(context.Background(), engineHours, durationDays)
		return vehiclePriceMsg{token: token, pred: pred, err: err}
	}
}

func (m vehicleModel) fetchBehavior(token string) tea.Cmd {
	client := m.client
	id := m.equipmentID
	return func() tea.Msg {
		analysis, err := client.AnalyzeBehavior(context.Background(), id)
		return vehicleBehaviorMsg{token: token, analysis: analysis, err: err}
	}
}

func (m vehicleModel) postReturn(token string) tea.Cmd {
	client := m.client
	id := m.equipmentID
	return func() tea.Msg {
		err := client.ReturnVehicle(context.Background(), id)
		return vehicleReturnedMsg{token: token, err: err}
	}
}

// Update handles messages (Bubble Tea interface).
func (m vehicleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case vehicleDetailMsg:
		m.detail.resolve(msg.token, msg.rec, msg.err)
		if m.detail.failed() {
			m.logger.Warn().
				Str("equipment_id", m.equipmentID).
				Str("error", m.detail.errMsg).
				Msg("detail load failed")
		}
		return m, nil

	case vehicleAvailabilityMsg:
		m.availability.resolve(msg.token, msg.pred, msg.err)
		return m, nil

	case vehiclePriceMsg:
		m.price.resolve(msg.token, msg.pred, msg.err)
		return m, nil

	case vehicleBehaviorMsg:
		m.behavior.resolve(msg.token, msg.analysis, msg.err)
		return m, nil

	case vehicleReturnedMsg:
		m.returned.resolve(msg.token, struct{}{}, msg.err)
		if m.returned.ok() {
			// The ack body is opaque: the service is authoritative, so the
			// screen reflects the new status through a full re-fetch, never
			// a local mutation of the record.
			tok := m.detail.start()
			return m, m.fetchDetail(tok)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.anyPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.input != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m vehicleModel) anyPending() bool {
	return m.detail.pending() || m.availability.pending() ||
		m.price.pending() || m.behavior.pending() || m.returned.pending()
}

func (m vehicleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		return m, navigateTo(ScreenCategory, map[string]string{ParamCategory: m.category})
	case "a":
		m.input = inputDate
		m.dateInput.Focus()
		return m, textinput.Blink
	case "p":
		// Price prediction depends on the unit's engine hours, so the
		// detail slot must have resolved first.
		if !m.detail.ok() {
			return m, nil
		}
		m.input = inputDays
		m.daysInput.Focus()
		return m, textinput.Blink
	case "b":
		return m.runBehaviorAnalysis()
	case "r":
		return m.markReturned()
	case "R":
		tok := m.detail.start()
		return m, tea.Batch(m.fetchDetail(tok), m.spin.Tick)
	}
	return m, nil
}

// handleInputKey routes keys while a date or duration prompt is open.
func (m vehicleModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = inputNone
		m.dateInput.Blur()
		m.daysInput.Blur()
		return m, nil
	case "enter":
		switch m.input {
		case inputDate:
			return m.runAvailabilityPrediction()
		case inputDays:
			return m.runPricePrediction()
		case inputNone:
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.input {
	case inputDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case inputDays:
		m.daysInput, cmd = m.daysInput.Update(msg)
	case inputNone:
	}
	return m, cmd
}

// runAvailabilityPrediction starts the availability slot. A missing or
// unparseable date is a no-op; the prompt stays open.
func (m vehicleModel) runAvailabilityPrediction() (tea.Model, tea.Cmd) {
	date := strings.TrimSpace(m.dateInput.Value())
	if date == "" {
		return m, nil
	}
	if _, err := fleet.ParseDate(date); err != nil {
		return m, nil
	}

	m.input = inputNone
	m.dateInput.Blur()
	m.futureDate = date

	tok := m.availability.start()
	return m, tea.Batch(m.fetchAvailability(tok, date), m.spin.Tick)
}

// runPricePrediction starts the price slot using the loaded engine hours.
func (m vehicleModel) runPricePrediction() (tea.Model, tea.Cmd) {
	if !m.detail.ok() {
		return m, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(m.daysInput.Value()))
	if err != nil || days <= 0 {
		return m, nil
	}

	m.input = inputNone
	m.daysInput.Blur()
	m.durationDays = days

	tok := m.price.start()
	return m, tea.Batch(m.fetchPrice(tok, m.detail.value.EngineHours, days), m.spin.Tick)
}

// runBehaviorAnalysis starts (or restarts) the behavior slot.
func (m vehicleModel) runBehaviorAnalysis() (tea.Model, tea.Cmd) {
	tok := m.behavior.start()
	return m, tea.Batch(m.fetchBehavior(tok), m.spin.Tick)
}

// markReturned posts the return. Starting the slot again while a previous
// post is in flight supersedes it, so rapid repeats settle into a single
// visible detail re-fetch.
func (m vehicleModel) markReturned() (tea.Model, tea.Cmd) {
	tok := m.returned.start()
	return m, tea.Batch(m.postReturn(tok), m.spin.Tick)
}

// View renders the vehicle screen (Bubble Tea interface).
func (m vehicleModel) View() string {
	header := HeaderStyle.Render("EQUIPMENT "+m.equipmentID) + "\n\n"

	// A load-on-entry failure replaces the whole screen; on-demand
	// failures below stay scoped to their own card.
	switch {
	case m.detail.pending():
		return header + m.spin.View() + " Loading equipment detail..."
	case m.detail.failed():
		return header + CriticalStyle.Render("Error: "+m.detail.errMsg) +
			"\n\n" + SubtleStyle.Render("Esc: back · q: quit")
	}

	sections := []string{
		m.renderDetail(),
		m.renderAvailabilityCard(),
		m.renderPriceCard(),
		m.renderBehaviorCard(),
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	var prompt string
	switch m.input {
	case inputDate:
		prompt = "\n" + LabelStyle.Render("Predict availability for: ") + m.dateInput.View()
	case inputDays:
		prompt = "\n" + LabelStyle.Render("Rental duration (days): ") + m.daysInput.View()
	case inputNone:
	}

	help := SubtleStyle.Render(
		"a: availability · p: price · b: behavior · r: mark returned · R: reload · Esc: back · q: quit")

	return header + body + prompt + "\n\n" + help
}

// renderDetail renders the telemetry and rental state of the unit.
func (m vehicleModel) renderDetail() string {
	rec := m.detail.value
	var b strings.Builder

	b.WriteString(LabelStyle.Render("Type:     "))
	b.WriteString(ValueStyle.Render(rec.Type))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Status:   "))
	label := rec.Status().String()
	b.WriteString(statusStyle(label).Render(label))
	b.WriteString("\n")

	if rec.Customer != "" {
		b.WriteString(LabelStyle.Render("Customer: "))
		b.WriteString(ValueStyle.Render(rec.Customer))
		b.WriteString("\n")
	}
	if rec.JobSite != "" {
		b.WriteString(LabelStyle.Render("Job Site: "))
		b.WriteString(ValueStyle.Render(rec.JobSite))
		b.WriteString("\n")
	}
	if rec.ExpectedReturnDate != "" {
		b.WriteString(LabelStyle.Render("Return:   "))
		b.WriteString(ValueStyle.Render(rec.ExpectedReturnDate))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render("TELEMETRY"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		LabelStyle.Render("Fuel:"),
		ValueStyle.Render(fmt.Sprintf("%.0f%%", rec.FuelLevel)),
		LabelStyle.Render("Engine Hours:"),
		ValueStyle.Render(fmt.Sprintf("%.1f", rec.EngineHours)),
		LabelStyle.Render("Engine Load:"),
		ValueStyle.Render(fmt.Sprintf("%.0f%%", rec.EngineLoad)),
	)

	fmt.Fprintf(&b, "%s %s\n",
		LabelStyle.Render("Location:"),
		ValueStyle.Render(fmt.Sprintf("%.5f, %.5f", rec.Latitude, rec.Longitude)),
	)
	if rec.Geofence != nil {
		fmt.Fprintf(&b, "%s %s\n",
			LabelStyle.Render("Geofence:"),
			ValueStyle.Render(fmt.Sprintf("%.5f, %.5f (r=%.1f km)",
				rec.Geofence.Latitude, rec.Geofence.Longitude, rec.Geofence.RadiusKm)),
		)
	}

	if len(rec.Alerts) > 0 {
		b.WriteString("\n")
		b.WriteString(HeaderStyle.Render("ALERTS"))
		b.WriteString("\n")
		for _, alert := range rec.Alerts {
			style := InfoStyle
			switch alert.Level {
			case fleet.AlertWarning:
				style = WarningStyle
			case fleet.AlertCritical:
				style = CriticalStyle
			case fleet.AlertInfo:
			}
			fmt.Fprintf(&b, "%s %s\n", style.Render("["+alert.Type+"]"), alert.Message)
		}
	}

	if m.returned.pending() {
		b.WriteString("\n" + m.spin.View() + " Marking returned...")
	} else if m.returned.failed() {
		b.WriteString("\n" + CriticalStyle.Render("Return failed: "+m.returned.errMsg))
	}

	return BoxStyle.Render(b.String())
}

// renderAvailabilityCard renders the on-demand availability prediction.
func (m vehicleModel) renderAvailabilityCard() string {
	title := HeaderStyle.Render("AVAILABILITY PREDICTION")
	var body string

	switch {
	case m.availability.idle():
		body = SubtleStyle.Render("Press 'a' and enter a date to predict availability.")
	case m.availability.pending():
		body = m.spin.View() + " Predicting..."
	case m.availability.failed():
		body = CriticalStyle.Render(m.availability.errMsg)
	default:
		pred := m.availability.value
		if pred.Available {
			body = OKStyle.Render(fmt.Sprintf("Available on %s", m.futureDate))
		} else {
			body = WarningStyle.Render(fmt.Sprintf("Not available on %s", m.futureDate))
			if pred.PredictedReturnDate != "" {
				body += SubtleStyle.Render(" (expected back " + pred.PredictedReturnDate + ")")
			}
		}
	}

	return title + "\n" + body
}

// renderPriceCard renders the on-demand price prediction.
func (m vehicleModel) renderPriceCard() string {
	title := HeaderStyle.Render("PRICE PREDICTION")
	var body string

	switch {
	case m.price.idle():
		body = SubtleStyle.Render("Press 'p' and enter a duration to estimate price.")
	case m.price.pending():
		body = m.spin.View() + " Estimating..."
	case m.price.failed():
		body = CriticalStyle.Render(m.price.errMsg)
	default:
		body = ValueStyle.Render(fmt.Sprintf("$%.2f", m.price.value.PredictedPrice)) +
			SubtleStyle.Render(fmt.Sprintf(" for %d days", m.durationDays))
	}

	return title + "\n" + body
}

// renderBehaviorCard renders the on-demand anomaly analysis.
func (m vehicleModel) renderBehaviorCard() string {
	title := HeaderStyle.Render("BEHAVIOR ANALYSIS")
	var body string

	switch {
	case m.behavior.idle():
		body = SubtleStyle.Render("Press 'b' to run anomaly detection.")
	case m.behavior.pending():
		body = m.spin.View() + " Analyzing telemetry..."
	case m.behavior.failed():
		body = CriticalStyle.Render(m.behavior.errMsg)
	default:
		a := m.behavior.value
		verdict := OKStyle.Render("Normal operation")
		if a.IsAnomaly {
			verdict = CriticalStyle.Render("ANOMALY DETECTED")
		}
		body = fmt.Sprintf("%s  %s %s  %s %s",
			verdict,
			LabelStyle.Render("error:"),
			ValueStyle.Render(fmt.Sprintf("%.4f", a.ReconstructionError)),
			LabelStyle.Render("threshold:"),
			ValueStyle.Render(fmt.Sprintf("%.4f", a.Threshold)),
		)
		if n := len(a.SequenceData); n > 0 {
			body += SubtleStyle.Render(fmt.Sprintf("  (%d samples)", n))
		}
	}

	return title + "\n" + body
}
