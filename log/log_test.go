package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	logger := New("log-test")

	SetLevel(Notice)
	logger.Info("hidden")
	logger.Notice("shown")

	SetLevel(Debug)
	logger.Debugf("debug %d", 42)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message leaked at notice level:\n%s", out)
	}
	for _, want := range []string{"shown", "debug 42", "[log-test]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
