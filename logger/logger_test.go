package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestNew_Levels(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	testCases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"verbose", zerolog.WarnLevel},
	}
	for _, tc := range testCases {
		New(Config{Level: tc.level, Out: &bytes.Buffer{}})
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Errorf("New(%q) global level = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestNew_Output(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer
		l := New(Config{Level: "info", Pretty: pretty, Out: &buf})
		l.Debug().Msg("hidden")
		l.Info().Str("symbol", "SPY").Msg("fetched")

		out := buf.String()
		if !strings.Contains(out, "fetched") || !strings.Contains(out, "SPY") {
			t.Errorf("pretty=%v output %q lacks the message", pretty, out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("pretty=%v output %q contains a filtered message", pretty, out)
		}
	}
}

func TestSetGlobalLogger(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Level: "warn", Out: &buf}))
	log.Warn().Msg("global")
	if !strings.Contains(buf.String(), "global") {
		t.Errorf("global logger output %q lacks the message", buf.String())
	}
}
