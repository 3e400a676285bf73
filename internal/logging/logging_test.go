package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetup_Level(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"bogus": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := Setup("json", in).GetLevel(); got != want {
			t.Errorf("Setup(json, %q) level = %v, want %v", in, got, want)
		}
	}
	if got := Setup("text", "error").GetLevel(); got != zerolog.ErrorLevel {
		t.Errorf("text logger level = %v", got)
	}
}
