// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. Two
// transports share it: browser clients receive "success/message/data" JSON
// and "message" errors, the Photon game client receives ResultCode envelopes.
// Status codes for failures are never chosen here; they come from
// [apperr.Web] and [apperr.Photon].
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for infrastructure endpoints.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// MessageEnvelope is the JSON envelope for session and account endpoints.
type MessageEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// StatusEnvelope is the JSON envelope for user resource reads.
type StatusEnvelope struct {
	Status bool        `json:"status"`
	Data   interface{} `json:"data"`
}

// ErrorEnvelope is the JSON envelope for web error responses.
type ErrorEnvelope struct {
	Message string              `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// PhotonErrorEnvelope is the JSON envelope for Photon error responses.
type PhotonErrorEnvelope struct {
	ResultCode int    `json:"ResultCode"`
	Message    string `json:"message"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Message writes a 200 OK "success/message" response. data may be nil.
func Message(writer http.ResponseWriter, message string, data interface{}) {
	JSON(writer, http.StatusOK, MessageEnvelope{Success: true, Message: message, Data: data})
}

// Status writes a 200 OK "status/data" response.
func Status(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, StatusEnvelope{Status: true, Data: data})
}

// Error converts any Go error into a web error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	mapping := apperr.Web(err)
	logFailure(request, err, mapping.Status)

	envelope := ErrorEnvelope{Message: mapping.Message}
	if appError := apperr.As(err); appError != nil && appError.Kind == apperr.KindInvalidParameters {
		envelope.Details = appError.Details
	}

	JSON(writer, mapping.Status, envelope)
}

// PhotonError converts any Go error into a Photon ResultCode response.
func PhotonError(writer http.ResponseWriter, request *http.Request, err error) {
	mapping := apperr.Photon(err)
	logFailure(request, err, mapping.Status)

	JSON(writer, mapping.Status, PhotonErrorEnvelope{
		ResultCode: mapping.ResultCode,
		Message:    mapping.Message,
	})
}

// logFailure records every 5xx with its hidden cause.
func logFailure(request *http.Request, err error, status int) {
	if status < http.StatusInternalServerError {
		return
	}

	ctx := request.Context()
	attributes := []any{
		slog.String("kind", apperr.KindOf(err).String()),
		slog.String("request_id", ctxutil.GetRequestID(ctx)),
	}

	if appError := apperr.As(err); appError != nil {
		attributes = append(attributes, slog.Any("cause", appError.Cause))
	} else {
		// Unclassified errors are logged in full but never sent to the client.
		attributes = append(attributes, slog.String("error", err.Error()))
	}

	ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error", attributes...)
}
