package company

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline-web/server/internal/upstream"
)

func service(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(upstream.New(upstream.Config{BaseURL: srv.URL, Timeout: 2}))
}

func TestCreateReturnsOptimisticPendingEntry(t *testing.T) {
	var body map[string]string
	svc := service(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/companies/request", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	})

	before := time.Now()
	req, err := svc.Create(context.Background(), "Acme Tooling", "Arun")
	require.NoError(t, err)

	assert.Equal(t, "Acme Tooling", body["companyName"])
	assert.Equal(t, "Arun", body["requestedBy"])
	assert.Equal(t, StatusPending, req.Status)
	assert.False(t, req.CreatedAt.Before(before))
}

func TestCreateFailureReturnsNothing(t *testing.T) {
	svc := service(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := svc.Create(context.Background(), "Acme Tooling", "Arun")
	assert.Error(t, err)
}

func TestApproveHitsApprovalEndpoint(t *testing.T) {
	var path, method string
	svc := service(t, func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
	})

	require.NoError(t, svc.Approve(context.Background(), "c-1"))
	assert.Equal(t, "/api/companies/approve/c-1", path)
	assert.Equal(t, http.MethodPut, method)
}

func TestDeleteHitsDeleteEndpoint(t *testing.T) {
	var path, method string
	svc := service(t, func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
	})

	require.NoError(t, svc.Delete(context.Background(), "c-1"))
	assert.Equal(t, "/api/companies/delete/c-1", path)
	assert.Equal(t, http.MethodDelete, method)
}

func TestUserRequests(t *testing.T) {
	svc := service(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies/user-requests", r.URL.Path)
		assert.Equal(t, "Arun", r.URL.Query().Get("user"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"c-1","name":"Acme Tooling","requestedBy":"Arun","status":"Pending","createdAt":"2026-08-29T08:00:00Z"}]`))
	})

	requests, err := svc.UserRequests(context.Background(), "Arun")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, StatusPending, requests[0].Status)
}
