package main

import (
	"context"
	"io"
	"testing"
	"time"

	"butce/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testConfig(port string) config.Config {
	return config.Config{
		Port:            port,
		Store:           "memory",
		SheetName:       "holdings",
		ShutdownTimeout: time.Second,
		Currency:        "TRY",
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRun_ReturnsListenError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	err := run(context.Background(), testConfig("not-a-port"), quietLogger())
	assert.Error(t, err)
}

func TestRun_StopsWhenContextEnds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig("0"), quietLogger()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the context was cancelled")
	}
}
