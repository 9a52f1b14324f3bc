package workspace

import "testing"

func TestStrategyUnmarshalText(t *testing.T) {
	cases := []struct {
		text string
		want Strategy
	}{
		{"fullcopy", StrategyFullCopy},
		{"full-copy", StrategyFullCopy},
		{"symlink", StrategySymlinkOnly},
		{"hard_link", StrategyHardLink},
		{"hybrid", StrategyHybridCopySymlink},
	}
	for _, c := range cases {
		var s Strategy
		if err := s.UnmarshalText([]byte(c.text)); err != nil {
			t.Errorf("UnmarshalText(%q) returned error: %v", c.text, err)
			continue
		}
		if s != c.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", c.text, s, c.want)
		}
	}
}

func TestStrategyUnmarshalTextRejectsUnknown(t *testing.T) {
	var s Strategy
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown strategy text")
	}
}

func TestStrategySupported(t *testing.T) {
	if Strategy(255).Supported() {
		t.Error("expected an out-of-range strategy value to be unsupported")
	}
	if !StrategyHardLink.Supported() {
		t.Error("expected StrategyHardLink to be supported")
	}
}

func TestContentTypeOrdering(t *testing.T) {
	if !(ContentTypeGameInstallation < ContentTypeGameClient && ContentTypeGameClient < ContentTypeMod) {
		t.Error("expected ContentType priority order GameInstallation < GameClient < Mod")
	}
}

func TestContentTypeUnmarshalText(t *testing.T) {
	var c ContentType
	if err := c.UnmarshalText([]byte("mod")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != ContentTypeMod {
		t.Errorf("expected ContentTypeMod, got %v", c)
	}
}
