package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

type envelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       map[string]any   `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2.0", body.APIVersion)
	return body
}

func TestWriteSuccess_WrapsData(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusCreated, map[string]string{"tournament_id": "trn_1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeEnvelope(t, rec)
	assert.Nil(t, body.Error)
	assert.Equal(t, "trn_1", body.Data["tournament_id"])
}

func TestWriteError_MapsSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
		wantReason string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: name is required", usecase.ErrInvalidInput), wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT", wantReason: "invalidInput"},
		{name: "not found", err: fmt.Errorf("%w: tournament trn_1", usecase.ErrNotFound), wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND", wantReason: "notFound"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantStatus: "UNAUTHENTICATED", wantReason: "unauthorized"},
		{name: "dependency unavailable", err: fmt.Errorf("%w: pubg api", usecase.ErrDependencyUnavailable), wantCode: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE", wantReason: "dependencyUnavailable"},
		{name: "duplicate key", err: fmt.Errorf("insert team: %w: duplicate key value", usecase.ErrConflict), wantCode: http.StatusConflict, wantStatus: "ALREADY_EXISTS", wantReason: "conflict"},
		{name: "import aborted", err: fmt.Errorf("%w: upsert players", usecase.ErrPersistenceFailure), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL", wantReason: "persistenceFailure"},
		{name: "unknown", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL", wantReason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decodeEnvelope(t, rec)
			require.NotNil(t, body.Error)
			assert.Nil(t, body.Data)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantStatus, body.Error.Status)
			assert.Equal(t, tt.err.Error(), body.Error.Message)
			require.Len(t, body.Error.Errors, 1)
			assert.Equal(t, "apexgrid", body.Error.Errors[0].Domain)
			assert.Equal(t, tt.wantReason, body.Error.Errors[0].Reason)
		})
	}
}

func TestWriteInternalError_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "internal server error", body.Error.Message)
}
