package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Defaults(t *testing.T) {
	l := newLogger()
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
}

func TestGetLogger_FromContext(t *testing.T) {
	entry := logrus.NewEntry(logrus.New()).WithField("tool", "skillvet_validate")
	ctx := WithLogger(context.Background(), entry)

	got := G(ctx)
	assert.Equal(t, "skillvet_validate", got.Data["tool"])
}

func TestGetLogger_FallsBackToGlobal(t *testing.T) {
	got := G(context.Background())
	assert.Equal(t, L.Logger, got.Logger)
}

func TestSetLogLevel(t *testing.T) {
	orig := L.Logger.GetLevel()
	t.Cleanup(func() { L.Logger.SetLevel(orig) })

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
	assert.Error(t, SetLogLevel("loud"))
}

func TestSetLogFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	origOut, origFmt, origLevel := L.Logger.Out, L.Logger.Formatter, L.Logger.GetLevel()
	t.Cleanup(func() {
		L.Logger.SetOutput(origOut)
		L.Logger.Formatter = origFmt
		L.Logger.SetLevel(origLevel)
	})

	SetLogOutput(&buf)
	SetLogFormat("json")
	L.Logger.SetLevel(logrus.InfoLevel)
	L.WithField("slug", "pdf-extract").Info("validated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "validated", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "pdf-extract", line["slug"])
}
