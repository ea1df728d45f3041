package logging

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("json"); got != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, want FormatJSON", got)
	}
	if got := ParseFormat("text"); got != FormatText {
		t.Errorf("ParseFormat(text) = %v, want FormatText", got)
	}
	if got := ParseFormat(""); got != FormatText {
		t.Errorf("ParseFormat('') = %v, want FormatText", got)
	}
}

func TestGetLoggerNotNil(t *testing.T) {
	InitLogger(LevelDebug, FormatText)
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil")
	}
}
