package server

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveKeyPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"Absolute", "/etc/ssh/key", "/etc/ssh/key"},
		{"Relative", ".ssh/custom", filepath.Join(home, ".ssh/custom")},
		{"Default", "", filepath.Join(home, ".ssh/tuiwin_ed25519")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveKeyPath(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("resolveKeyPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
