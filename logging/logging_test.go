package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*DefaultLogger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewLogger(&out, &errOut), &out, &errOut
}

func TestDefaultLogger_RoutesByLevel(t *testing.T) {
	l, out, errOut := newTestLogger()

	l.Info("loaded signal", Fields{"samples": 10, "file": "sigA.csv"})
	l.Warn("clipped")
	l.Error(errors.New("boom"), "run failed")

	assert.Contains(t, out.String(), "[INFO] loaded signal file=sigA.csv samples=10")
	assert.Contains(t, errOut.String(), "[WARN] clipped")
	assert.Contains(t, errOut.String(), "[ERROR] run failed: boom")
	assert.NotContains(t, out.String(), "WARN")
}

func TestDefaultLogger_Level(t *testing.T) {
	l, out, _ := newTestLogger()

	l.Debug("hidden")
	assert.Empty(t, out.String())

	l.SetLevel(DebugLevel)
	l.Debug("shown")
	assert.Contains(t, out.String(), "[DEBUG] shown")
}

func TestDefaultLogger_WithFields(t *testing.T) {
	l, out, _ := newTestLogger()

	child := l.WithFields(Fields{"run_id": "abc"})
	child.Info("start", Fields{"filter": "iir"})
	l.Info("parent")

	assert.Contains(t, out.String(), "start filter=iir run_id=abc")
	assert.Contains(t, out.String(), "[INFO] parent\n")
}

func TestDefaultLogger_WithContext(t *testing.T) {
	l, out, _ := newTestLogger()

	ctx := ContextWithFields(context.Background(), Fields{"signal": "sigB.csv"})
	l.WithContext(ctx).Info("filtered")
	l.WithContext(context.Background()).Info("plain")

	assert.Contains(t, out.String(), "filtered signal=sigB.csv")
	assert.Contains(t, out.String(), "[INFO] plain\n")
}

func TestDefaultLogger_FatalExits(t *testing.T) {
	l, _, errOut := newTestLogger()
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal(errors.New("bad config"), "cannot start")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "[FATAL] cannot start: bad config")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"":        InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	l, out, _ := newTestLogger()
	SetGlobalLogger(l)
	Info("global")
	assert.Contains(t, out.String(), "[INFO] global")

	SetGlobalLogger(nil)
	assert.IsType(t, &NoOpLogger{}, GetGlobalLogger())
}
