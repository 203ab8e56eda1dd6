package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCode: "INVALID_ARGUMENT"},
		{name: "not found", err: usecase.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "competition not found", err: competition.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "phase not found", err: competition.ErrPhaseNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "round not found", err: competition.ErrRoundNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "lineup invalid", err: usecase.ErrLineupInvalid, wantStatus: http.StatusUnprocessableEntity, wantCode: "FAILED_PRECONDITION"},
		{name: "bad transition", err: match.ErrInvalidStatusTransition, wantStatus: http.StatusConflict, wantCode: "ABORTED"},
		{name: "round not empty", err: competition.ErrRoundNotEmpty, wantStatus: http.StatusConflict, wantCode: "ABORTED"},
		{name: "dispatcher closed", err: usecase.ErrDispatcherClosed, wantStatus: http.StatusServiceUnavailable, wantCode: "UNAVAILABLE"},
		{name: "event log unavailable", err: usecase.ErrEventLogUnavailable, wantStatus: http.StatusServiceUnavailable, wantCode: "UNAVAILABLE"},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(context.Background(), fmt.Errorf("wrapped: %w", tc.err))
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("expected HTTP %d, got %d", tc.wantStatus, mapped.HTTPStatus)
			}
			if mapped.Status != tc.wantCode {
				t.Fatalf("expected status %s, got %s", tc.wantCode, mapped.Status)
			}
		})
	}
}
