package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zerolog.Nop())
}

// TestSummary_ParsesStatuses verifies the summary envelope decoding.
func TestSummary_ParsesStatuses(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summary", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"category":"Excavator","statuses":{"Total":5,"Available":3,"In-Use":2,"Maintenance":0}}]}`))
	}))

	rows, err := client.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Excavator", rows[0].Category)
	assert.Equal(t, 5, rows[0].Total)
	assert.Equal(t, 3, rows[0].Available)
	assert.Equal(t, 2, rows[0].InUse)
	assert.Equal(t, 0, rows[0].Maintenance)
}

// TestSummary_MalformedData verifies a non-sequence data field yields a
// SchemaError, not a decode panic or a transport error.
func TestSummary_MalformedData(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"category":"Excavator"}}`))
	}))

	_, err := client.Summary(context.Background())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "invalid data format", err.Error())
}

// TestEquipmentByType_MissingData treats an absent data field as malformed.
func TestEquipmentByType_MissingData(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := client.EquipmentByType(context.Background(), "Excavator")

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

// TestEquipmentByType_EscapesCategory verifies path escaping of the
// category segment.
func TestEquipmentByType_EscapesCategory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/equipment/type/Boom%20Lift", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	records, err := client.EquipmentByType(context.Background(), "Boom Lift")
	require.NoError(t, err)
	assert.Empty(t, records)
}

// TestEquipmentByID_Success decodes a bare record (no envelope).
func TestEquipmentByID_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/equipment/id/EX-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"EquipmentID":"EX-1","Type":"Excavator","Status":"In-Use","EngineHours":1200.5,"FuelLevel":62}`))
	}))

	rec, err := client.EquipmentByID(context.Background(), "EX-1")
	require.NoError(t, err)

	assert.Equal(t, "EX-1", rec.EquipmentID)
	assert.Equal(t, 1200.5, rec.EngineHours)
	assert.Equal(t, "In-Use", rec.RawStatus)
}

// TestServerError_PrefersServerMessage verifies a structured {error} body
// is surfaced verbatim instead of the generic fallback.
func TestServerError_PrefersServerMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model unavailable"}`))
	}))

	_, err := client.PredictAvailability(context.Background(), "EX-1", "2026-09-01")
	require.Error(t, err)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "model unavailable", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, serverErr.StatusCode)
}

// TestServerError_GenericFallback verifies non-2xx bodies without {error}
// produce the generic message.
func TestServerError_GenericFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	}))

	_, err := client.Summary(context.Background())
	require.Error(t, err)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, genericErrMsg, err.Error())
}

// TestTransportError verifies a connection failure maps to TransportError.
func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // closed before use: guaranteed connection refusal

	client := NewClient(srv.URL, time.Second, zerolog.Nop())
	_, err := client.Summary(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

// TestPredictPrice_SendsEngineHours verifies the request body contract.
func TestPredictPrice_SendsEngineHours(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict-price", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"predictedPrice":412.50}`))
	}))

	pred, err := client.PredictPrice(context.Background(), 1200.5, 7)
	require.NoError(t, err)
	assert.Equal(t, 412.50, pred.PredictedPrice)
}

// TestReturnVehicle_OpaqueAck verifies any 2xx body is accepted.
func TestReturnVehicle_OpaqueAck(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/return-vehicle", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	err := client.ReturnVehicle(context.Background(), "EX-1")
	assert.NoError(t, err)
}

// TestAnalyzeBehavior_Success decodes the anomaly payload.
func TestAnalyzeBehavior_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze-behavior/EX-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"is_anomaly":true,"reconstruction_error":0.42,"threshold":0.3,"sequence_data":[{"Timestamp":"2026-08-01T00:00:00Z","EngineLoad":87.5}]}`))
	}))

	analysis, err := client.AnalyzeBehavior(context.Background(), "EX-1")
	require.NoError(t, err)

	assert.True(t, analysis.IsAnomaly)
	assert.Equal(t, 0.42, analysis.ReconstructionError)
	require.Len(t, analysis.SequenceData, 1)
	assert.Equal(t, 87.5, analysis.SequenceData[0].EngineLoad)
}

// TestDemandForecast_BareSequence verifies the unenveloped list shape.
func TestDemandForecast_BareSequence(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"ds":"2026-08-20","y":12,"yhat":11.4},{"ds":"2026-08-21","yhat":13.1,"yhat_lower":9.8,"yhat_upper":16.4}]`))
	}))

	points, err := client.DemandForecast(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)

	require.NotNil(t, points[0].Actual)
	assert.Equal(t, 12.0, *points[0].Actual)
	assert.Nil(t, points[1].Actual)
	require.NotNil(t, points[1].UpperBound)
	assert.Equal(t, 16.4, *points[1].UpperBound)
}

// TestDemandForecast_ObjectBody rejects a non-sequence forecast payload.
func TestDemandForecast_ObjectBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"forecast":[]}`))
	}))

	_, err := client.DemandForecast(context.Background())

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

// TestSustainabilityReport_Mapping decodes the per-type mapping.
func TestSustainabilityReport_Mapping(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sustainability/report", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"Excavator":{"total_engine_hours":5400,"average_fuel_level":58.2,"total_emissions_kg_co2e":1320.7}}}`))
	}))

	report, err := client.SustainabilityReport(context.Background())
	require.NoError(t, err)
	require.Contains(t, report, "Excavator")
	assert.Equal(t, 5400.0, report["Excavator"].TotalEngineHours)
	assert.Equal(t, 1320.7, report["Excavator"].TotalEmissionsKg)
}
