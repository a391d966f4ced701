package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"vidshare/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	logger.Configure(log, logger.Config{Level: "debug", Format: "json", Output: &buf})

	log.WithField("video_id", "v-1").Debug("counters reconciled")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "counters reconciled", entry["msg"])
	assert.Equal(t, "v-1", entry["video_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	logger.Configure(log, logger.Config{Level: "loud", Output: &buf})

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
