package gsheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"leanfunnel/internal"
	"leanfunnel/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURL(srv.URL+"/v4/"),
		WithRetries(2, time.Millisecond),
		WithLogger(internal.Discard),
	)
}

func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient()
		assert.Equal(t, DefaultBaseURL, c.baseURL)
		assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
		assert.Equal(t, 3, c.maxRetries)
		assert.Equal(t, time.Second, c.retryBackoff)
		assert.NotNil(t, c.logger)
	})

	t.Run("with options", func(t *testing.T) {
		hc := &http.Client{}
		c := NewClient(WithHTTPClient(hc), WithTimeout(5*time.Second), WithRetries(1, 0), WithBaseURL("http://x/"))
		assert.Same(t, hc, c.httpClient)
		assert.Equal(t, 5*time.Second, hc.Timeout)
		assert.Equal(t, 1, c.maxRetries)
		assert.Equal(t, "http://x", c.baseURL)
	})
}

func TestGetValues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/doc-1/values/'System_Logic'", r.URL.Path)
		assert.Equal(t, "ROWS", r.URL.Query().Get("majorDimension"))
		assert.Equal(t, "FORMATTED_VALUE", r.URL.Query().Get("valueRenderOption"))

		json.NewEncoder(w).Encode(map[string]any{
			"range":          "System_Logic!A1:D3",
			"majorDimension": "ROWS",
			"values": [][]any{
				{"Week", "Sample_Status", "Expected_Value", "Paid"},
				{"1", "Approved", "₹1,000", true},
				{2, "Pending"},
			},
		})
	})

	vr, err := c.GetValues(context.Background(), "doc-1", WorksheetRange("System_Logic"))
	require.NoError(t, err)

	grid := vr.Grid()
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"1", "Approved", "₹1,000", "TRUE"}, grid[1])
	assert.Equal(t, []string{"2", "Pending"}, grid[2])
}

func TestGetValues_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"values":[["Week"],["1"]]}`))
	})

	vr, err := c.GetValues(context.Background(), "doc", "A1:Z")
	require.NoError(t, err)
	assert.Len(t, vr.Values, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetValues_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetValues(context.Background(), "doc", "A1:Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetValues_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))
	})

	_, err := c.GetValues(context.Background(), "missing", "A1:Z")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Status)
	assert.Equal(t, "Requested entity was not found.", apiErr.Message)
	assert.False(t, apiErr.IsRetryable())
}

func TestGetValues_ContextCancelledDuringBackoff(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c.retryBackoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetValues(ctx, "doc", "A1:Z")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetValues_RequiresSpreadsheetID(t *testing.T) {
	_, err := NewClient().GetValues(context.Background(), "", "A1")
	assert.Error(t, err)
}

func TestWorksheetRange(t *testing.T) {
	assert.Equal(t, "'System_Logic'", WorksheetRange("System_Logic"))
	assert.Equal(t, "'Bob''s leads'", WorksheetRange("Bob's leads"))
}

func TestWorksheet_FetchSheet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values":[[" Week ","Sample_Status","Final Order Value"],["1","Approved","₹500","extra"],[],["","Pending"]]}`))
	})
	ws := NewWorksheet(c, "doc-9", "System_Logic")

	assert.Equal(t, "gsheets:doc-9/System_Logic", ws.Name())

	sheet, err := ws.FetchSheet(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "System_Logic", sheet.Name)
	assert.Equal(t, []string{"Week", "Sample_Status", "Final Order Value"}, sheet.Headers)
	require.Len(t, sheet.Records, 3)
	assert.Equal(t, "₹500", sheet.Records[0]["Final Order Value"])
	assert.Len(t, sheet.Records[0], 3, "cells past the header row are dropped")
	assert.Equal(t, "", sheet.Records[1]["Week"], "blank rows are padded, not skipped")
	assert.Equal(t, "Pending", sheet.Records[2]["Sample_Status"])
	assert.Equal(t, "", sheet.Records[2]["Final Order Value"])
}

func TestWorksheet_FetchSheetWrapsFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := NewWorksheet(c, "doc", "System_Logic").FetchSheet(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalService, errors.GetCode(err))
}

func TestLoadServiceAccountKey(t *testing.T) {
	key, err := LoadServiceAccountKey(`{"type":"service_account"}`, "/does/not/matter")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, string(key))

	_, err = LoadServiceAccountKey("", "")
	assert.Error(t, err)

	_, err = LoadServiceAccountKey("", "/no/such/key.json")
	assert.Error(t, err)
}

func TestNewAuthorizedHTTPClient_RejectsBadKeys(t *testing.T) {
	_, err := NewAuthorizedHTTPClient(context.Background(), nil, time.Second)
	assert.Error(t, err)

	_, err = NewAuthorizedHTTPClient(context.Background(), []byte(`{"type":"authorized_user"}`), time.Second)
	assert.Error(t, err)
}
