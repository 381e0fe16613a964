package updater

import (
	"slices"
	"testing"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		current  string
		expected bool
	}{
		{"newer patch", "0.1.1", "0.1.0", true},
		{"newer minor", "0.2.0", "0.1.9", true},
		{"newer major", "1.0.0", "0.9.9", true},
		{"equal", "0.1.0", "0.1.0", false},
		{"older", "0.1.0", "0.2.0", false},
		{"double digit minor", "0.10.0", "0.9.0", true},
		{"longer is newer", "1.2.0", "1.2", true},
		{"shorter is older", "1.2", "1.2.0", false},
		{"prerelease suffix ignored", "1.2.3-rc1", "1.2.3", false},
		{"dev current", "0.0.1", "dev", true},
		{"empty latest", "", "0.1.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNewer(tt.latest, tt.current); got != tt.expected {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.expected)
			}
		})
	}
}

func TestIsNewer_MatchesSequenceOrder(t *testing.T) {
	versions := []string{"0.0.1", "0.1.0", "0.9.9", "0.10.0", "1.0", "1.0.0", "1.0.1", "2.0.0", "10.0.0"}
	for i, a := range versions {
		for j, b := range versions {
			want := i > j
			if got := IsNewer(a, b); got != want {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want []uint64
	}{
		{"1.2.0", []uint64{1, 2, 0}},
		{"10.20.30", []uint64{10, 20, 30}},
		{"1.2.3-beta", []uint64{1, 2, 3}},
		{"1.x.3", []uint64{1, 3}},
		{"dev", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseVersion(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVersionFromTag(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"v1.2.0", "1.2.0"},
		{"1.2.0", "1.2.0"},
		{"vv1.2.0", "v1.2.0"},
		{"release-1", "elease-1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := VersionFromTag(tt.tag); got != tt.want {
			t.Errorf("VersionFromTag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
