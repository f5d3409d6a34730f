package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
	Error   *string         `json:"error"`
	Stack   *string         `json:"stack"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"booking_number": "BK-1"})

	body := decode(t, recorder)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))
	assert.True(t, body.Success)
	assert.JSONEq(t, `{"booking_number":"BK-1"}`, string(body.Data))
}

func TestWithMessage(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		success bool
	}{
		{name: "ok", code: http.StatusOK, success: true},
		{name: "not found", code: http.StatusNotFound, success: false},
		{name: "too many requests", code: http.StatusTooManyRequests, success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithMessage(recorder, tt.code, "done")

			body := decode(t, recorder)

			assert.Equal(t, tt.code, recorder.Code)
			assert.Equal(t, tt.success, body.Success)
			require.NotNil(t, body.Message)
			assert.Equal(t, "done", *body.Message)
		})
	}
}

func TestWithError(t *testing.T) {
	cfg := config.Get()
	env := cfg.Server.Env

	t.Cleanup(func() { cfg.Server.Env = env })

	tests := []struct {
		name      string
		env       string
		err       error
		code      int
		message   string
		withStack bool
	}{
		{
			name:    "domain failure carries its status",
			env:     constant.ServerEnvDevelopment,
			err:     failure.NotFound("booking"),
			code:    http.StatusNotFound,
			message: failure.NotFound("booking").Error(),
		},
		{
			name:    "wrapped conflict",
			env:     constant.ServerEnvDevelopment,
			err:     fmt.Errorf("failed to create booking: %w", failure.Conflict("room 101 is not available")),
			code:    http.StatusConflict,
			message: "failed to create booking: room 101 is not available",
		},
		{
			name:      "unexpected error outside production",
			env:       constant.ServerEnvDevelopment,
			err:       errors.New("connection refused"),
			code:      http.StatusInternalServerError,
			message:   "connection refused",
			withStack: true,
		},
		{
			name:    "unexpected error in production",
			env:     constant.ServerEnvProduction,
			err:     errors.New("connection refused"),
			code:    http.StatusInternalServerError,
			message: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Server.Env = tt.env
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			body := decode(t, recorder)

			assert.Equal(t, tt.code, recorder.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.message, *body.Error)
			assert.Equal(t, tt.withStack, body.Stack != nil)
		})
	}
}

func TestWithRequestLimitExceeded(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRequestLimitExceeded(recorder)

	body := decode(t, recorder)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.NotNil(t, body.Message)
	assert.Equal(t, constant.ResponseErrorRequestLimitExceeded, *body.Message)
}
