// Package api is the typed client for the external fleet analytics service.
// All business logic (forecasting, anomaly detection, pricing) lives on the
// service side; this package only issues requests, validates response
// shapes at the boundary, and converts failures into the three surfaced
// error kinds (transport, server, schema).
package api
