package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestWriteInternalDeadlineExceeded(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternal(rec, testLogger(), context.DeadlineExceeded, "get order")

	assert.Equal(t, 503, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"TIMEOUT"`)
	assert.Contains(t, rec.Body.String(), "retry")
}

func TestWriteInternalWrappedDeadline(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("load order: %w", context.DeadlineExceeded)
	writeInternal(rec, testLogger(), err, "get order")

	assert.Equal(t, 503, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"TIMEOUT"`)
}

func TestWriteInternalGenericError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternal(rec, testLogger(), errors.New("connection refused"), "get order")

	assert.Equal(t, 500, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL"`)
}
