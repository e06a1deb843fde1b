package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogger(zap.New(core))

	n.Success("Attendance saved")
	n.Error("2 records failed to save")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Attendance saved", entries[0].Message)
	assert.Equal(t, "notify", entries[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "error", entries[1].ContextMap()["kind"])
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	r.Success("one")
	r.Error("two")

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, Message{Kind: KindError, Text: "two"}, last)

	msgs := r.Messages()
	assert.Equal(t, []Message{{KindSuccess, "one"}, {KindError, "two"}}, msgs)

	msgs[0].Text = "changed"
	assert.Equal(t, "one", r.Messages()[0].Text)
}

var _ Notifier = (*Logger)(nil)
var _ Notifier = (*Recorder)(nil)
