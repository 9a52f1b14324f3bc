package logging

import "testing"

func TestNameToLevel(t *testing.T) {
	cases := map[string]Level{
		"disabled": LevelDisabled,
		"error":    LevelError,
		"warn":     LevelWarn,
		"info":     LevelInfo,
		"debug":    LevelDebug,
	}
	for name, want := range cases {
		got, ok := NameToLevel(name)
		if !ok {
			t.Errorf("NameToLevel(%q) reported invalid", name)
		}
		if got != want {
			t.Errorf("NameToLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNameToLevelInvalid(t *testing.T) {
	if _, ok := NameToLevel("verbose"); ok {
		t.Error("expected an unrecognized level name to report invalid")
	}
}
