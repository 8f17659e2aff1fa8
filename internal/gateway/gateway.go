// internal/gateway/gateway.go

// Package gateway is the HTTP client layer that isolates the rest of the
// application from the two agent backends' wire details. Each operation is
// one stateless request/response exchange with two terminal outcomes: the
// decoded JSON body, or a GatewayError (remote or connectivity).
//
// The gateway does not retry, cache, or reshape responses. Flags like
// use_cache are pass-through hints to the backend.
package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "marketscout/internal/common/errors"
	commonhttp "marketscout/internal/common/http"
	"marketscout/internal/common/logger"
	"marketscout/internal/common/metrics"
)

// Backend names used in errors, logs, and metric labels.
const (
	BackendResearch = "research"
	BackendCSV      = "csv"
)

// Payload is the verbatim decoded JSON body of a successful backend
// response. Its structure is owned by the backend; callers pick out the
// fields they need for display.
type Payload = map[string]interface{}

// errorBody is the only response shape the gateway knows about: the detail
// field FastAPI-style backends put in non-2xx bodies.
type errorBody struct {
	Detail string `json:"detail"`
}

// doJSON issues req and normalizes the outcome. Non-2xx responses become
// remote errors carrying the backend's detail message when one is present,
// else a generic "<status> <statusText>" line. Transport failures, timeout
// expiry included, become connectivity errors with connectMsg.
func doJSON(client *commonhttp.Client, log logger.Logger, backend, operation, connectMsg string, req *http.Request) (Payload, error) {
	metrics.GatewayRequestsTotal.WithLabelValues(backend, operation).Inc()
	start := time.Now()

	resp, err := client.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestFailures.WithLabelValues(backend, operation, string(apperrors.KindConnectivity)).Inc()
		log.Warn("backend unreachable", map[string]interface{}{
			"backend":   backend,
			"operation": operation,
			"error":     err.Error(),
		})
		return nil, apperrors.NewConnectivityError(backend, operation, connectMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.GatewayRequestFailures.WithLabelValues(backend, operation, string(apperrors.KindRemote)).Inc()

		message := fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		body, readErr := io.ReadAll(resp.Body)
		if readErr == nil {
			var eb errorBody
			if json.Unmarshal(body, &eb) == nil && eb.Detail != "" {
				message = eb.Detail
			}
		}

		log.Warn("backend returned error status", map[string]interface{}{
			"backend":   backend,
			"operation": operation,
			"status":    resp.StatusCode,
			"message":   message,
		})
		return nil, apperrors.NewRemoteError(backend, operation, resp.StatusCode, message)
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.GatewayRequestFailures.WithLabelValues(backend, operation, string(apperrors.KindRemote)).Inc()
		return nil, apperrors.NewRemoteError(backend, operation, resp.StatusCode,
			fmt.Sprintf("invalid JSON in response body: %v", err))
	}

	return payload, nil
}
