package main

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthStatusHealthy(t *testing.T) {
	status, body := healthStatus(nil, nil, "1.0.0")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestHealthStatusHidesErrorDetails(t *testing.T) {
	dbErr := errors.New(`connect failed: password authentication failed for user "writer_user" on db.internal:5432`)
	cacheErr := errors.New("dial tcp cache.internal:6379: connection refused")

	status, body := healthStatus(dbErr, cacheErr, "1.0.0")

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["status"])

	checks, ok := body["checks"].(gin.H)
	require.True(t, ok)
	assert.Equal(t, "unavailable", checks["database"])
	assert.Equal(t, "unavailable", checks["cache"])

	rendered := fmt.Sprintf("%v", body)
	assert.NotContains(t, rendered, "writer_user")
	assert.NotContains(t, rendered, "db.internal")
	assert.NotContains(t, rendered, "cache.internal")
}

func TestHealthStatusPartialOutage(t *testing.T) {
	status, body := healthStatus(nil, errors.New("cache down"), "1.0.0")

	assert.Equal(t, http.StatusServiceUnavailable, status)

	checks, ok := body["checks"].(gin.H)
	require.True(t, ok)
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "unavailable", checks["cache"])
}
