package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, WarnLogger)
	assert.NotNil(t, ErrorLogger)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)
	defer Init()

	Info("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)
	defer Init()

	Infof("request took %dms", 42)

	assert.Contains(t, buf.String(), "request took 42ms")
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	WarnLogger = log.New(&buf, "WARN: ", 0)
	defer Init()

	Warn("queue not drained")

	assert.Contains(t, buf.String(), "queue not drained")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)
	defer Init()

	Error("test error")

	assert.Contains(t, buf.String(), "test error")
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)
	defer Init()

	Errorf("failed to send to %s", "user@mail.ru")

	assert.Contains(t, buf.String(), "failed to send to user@mail.ru")
}
