package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetfocus/fleetfocus/internal/fleet"
)

// defaultTimeout bounds every service call when the config does not set one.
const defaultTimeout = 30 * time.Second

// Client talks to the external fleet analytics service. It is safe to share
// one Client across screens; every method takes a context and returns a
// typed error from errors.go.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Client for the given base URL. A zero timeout falls
// back to defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// envelope is the {data: ...} wrapper used by collection endpoints. Data is
// kept raw so the shape can be validated before decoding.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorBody is the structured error shape the service uses on failures.
type errorBody struct {
	Error string `json:"error"`
}

// do issues one request and returns the raw body on 2xx. Failures are
// converted to the typed error taxonomy here so callers never see raw
// transport or status errors.
func (c *Client) do(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("op", op).Msg("request failed")
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	c.logger.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := genericErrMsg
		var eb errorBody
		if jsonErr := json.Unmarshal(raw, &eb); jsonErr == nil && eb.Error != "" {
			msg = eb.Error
		}
		return nil, &ServerError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	return raw, nil
}

// decodeEnvelopeList decodes a {data: [...]} payload, rejecting any body
// where data is missing or not a sequence.
func decodeEnvelopeList[T any](op string, raw []byte) ([]T, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &SchemaError{Op: op, Detail: err.Error()}
	}
	if len(env.Data) == 0 || !isJSONArray(env.Data) {
		return nil, &SchemaError{Op: op, Detail: "expected data to be a sequence"}
	}
	var out []T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, &SchemaError{Op: op, Detail: err.Error()}
	}
	return out, nil
}

// isJSONArray reports whether raw begins a JSON array.
func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// summaryRow is the wire shape of one fleet summary line.
type summaryRow struct {
	Category string         `json:"category"`
	Statuses map[string]int `json:"statuses"`
}

// Summary fetches the per-category fleet summary.
func (c *Client) Summary(ctx context.Context) ([]fleet.SummaryRow, error) {
	const op = "summary"
	raw, err := c.do(ctx, op, http.MethodGet, "/summary", nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeEnvelopeList[summaryRow](op, raw)
	if err != nil {
		return nil, err
	}

	out := make([]fleet.SummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, fleet.SummaryRow{
			Category:    r.Category,
			Total:       r.Statuses["Total"],
			Available:   r.Statuses["Available"],
			InUse:       r.Statuses["In-Use"],
			Maintenance: r.Statuses["Maintenance"],
		})
	}
	return out, nil
}

// EquipmentByType fetches every record in one equipment category.
func (c *Client) EquipmentByType(ctx context.Context, category string) ([]fleet.EquipmentRecord, error) {
	const op = "equipment-by-type"
	path := "/equipment/type/" + url.PathEscape(category)
	raw, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeEnvelopeList[fleet.EquipmentRecord](op, raw)
}

// EquipmentByID fetches one record.
func (c *Client) EquipmentByID(ctx context.Context, equipmentID string) (*fleet.EquipmentRecord, error) {
	const op = "equipment-by-id"
	path := "/equipment/id/" + url.PathEscape(equipmentID)
	raw, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var rec fleet.EquipmentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &SchemaError{Op: op, Detail: err.Error()}
	}
	if rec.EquipmentID == "" {
		return nil, &SchemaError{Op: op, Detail: "record missing EquipmentID"}
	}
	return &rec, nil
}

// PredictAvailability asks whether a unit will be free on futureDate
// (formatted YYYY-MM-DD).
func (c *Client) PredictAvailability(ctx context.Context, equipmentID, futureDate string) (*fleet.AvailabilityPrediction, error) {
	const op = "predict-availability"
	body := map[string]string{"equipmentId": equipmentID, "futureDate": futureDate}
	raw, err := c.do(ctx, op, http.MethodPost, "/predict-availability", body)
	if err != nil {
		return nil, err
	}
	var pred fleet.AvailabilityPrediction
	if err := json.Unmarshal(raw, &pred); err != nil {
		return nil, &SchemaError{Op: op, Detail: err.Error()}
	}
	return &pred, nil
}

// PredictPrice estimates the rental price for a duration given the unit's
// current engine hours.
func (c *Client) PredictPrice(ctx context.Context, engineHours float64, durationDays int) (*fleet.PricePrediction, error) {
	const op = "predict-price"
	body := map[string]any{"engineHours": engineHours, "durationDays": durationDays}
	raw, err := c.do(ctx, op, http.MethodPost, "/predict-price", body)
	if err != nil {
		return nil, err
	}
	var pred fleet.PricePrediction
	if err := json.Unmarshal(raw, &pred); err != nil {
		return nil, &SchemaError{Op: op, Detail: err.Error()}
	}
	return &pred, nil
}

// ReturnVehicle marks a unit as returned. The response body is an opaque
// ack; callers are expected to re-fetch the record rather than patch local
// state.
func (c *Client) ReturnVehicle(ctx context.Context, equipmentID string) error {
	const op = "return-vehicle"
	body := map[string]string{"equipmentId": equipmentID}
	_, err := c.do(ctx, op, http.MethodPost, "/return-vehicle", body)
	return err
}

// AnalyzeBehavior runs anomaly detection over a unit's recent telemetry.
func (c *Client) AnalyzeBehavior(ctx context.Context, equipmentID string) (*fleet.BehaviorAnalysis, error) {
	const op = "analyze-behavior"
	path := "/analyze-behavior/" + url.PathEscape(equipmentID)
	raw, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var analysis fleet.BehaviorAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, &SchemaError{Op: op, Detail: err.Error()}
	}
	return &analysis, nil
}

// DemandForecast fetches the rental demand forecast. The endpoint returns a
// bare sequence, not the {data} envelope.
func (c *Client) DemandForecast(ctx context.Context) ([]fleet.ForecastPoint, error) {
	const op = "predict-demand"
	raw, err := c.do(ctx, op, http.MethodGet, "/predict-demand", nil)
	if err != nil {
		return nil, err
	}
	if !isJSONArray(raw) {
		return nil, &SchemaError{Op: op, Detail: "expected forecast to be a sequence"}
	}
	var points []fleet.ForecastPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, &SchemaError{Op: op, Detail: err.Error()}
	}
	return points, nil
}

// SustainabilityReport fetches per-type emissions aggregates.
func (c *Client) SustainabilityReport(ctx context.Context) (map[string]fleet.SustainabilityEntry, error) {
	const op = "sustainability-report"
	raw, err := c.do(ctx, op, http.MethodGet, "/sustainability/report", nil)
	if err != nil {
		return nil, err
	}
	var env struct {
		Data map[string]fleet.SustainabilityEntry `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &SchemaError{Op: op, Detail: err.Error()}
	}
	if env.Data == nil {
		return nil, &SchemaError{Op: op, Detail: "expected data to be a mapping"}
	}
	return env.Data, nil
}

// BaseURL returns the configured service base URL, for display in the TUI
// footer.
func (c *Client) BaseURL() string { return c.baseURL }
