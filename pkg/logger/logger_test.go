package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardLoggerPrefixes(t *testing.T) {
	var buf bytes.Buffer
	l := NewStandardLogger(log.New(&buf, "", 0))

	l.Info("armed %s", "14:00-Ascot")
	l.Warning("stale fire for %s", "14:00-Ascot")
	l.Error("delivery failed: %v", assert.AnError)

	assert.Equal(t,
		"[INFO] armed 14:00-Ascot\n"+
			"[WARNING] stale fire for 14:00-Ascot\n"+
			"[ERROR] delivery failed: "+assert.AnError.Error()+"\n",
		buf.String())
}

func TestMockRecords(t *testing.T) {
	m := NewMock()
	m.Info("a %d", 1)
	m.Error("b")
	assert.Equal(t, []string{"a 1"}, m.Infos())
	assert.Empty(t, m.Warnings())
	assert.Equal(t, []string{"b"}, m.Errors())
}
