package tool

import (
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected string
	}{
		{"Zero bytes", 0, "0 B"},
		{"Small bytes", 512, "512 B"},
		{"Max bytes", 1023, "1023 B"},
		{"Exact 1 KB", 1024, "1 KB"},
		{"1.5 KB", 1536, "1.5 KB"},
		{"1.25 KB", 1280, "1.25 KB"},
		{"10 KB", 10240, "10 KB"},
		{"Exact 1 MB", 1048576, "1 MB"},
		{"1.5 MB", 1572864, "1.5 MB"},
		{"Exact 1 GB", 1073741824, "1 GB"},
		{"Exact 1 TB", 1099511627776, "1 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatSize(tt.size)
			if result != tt.expected {
				t.Errorf("FormatSize(%d) = %s, expected %s", tt.size, result, tt.expected)
			}
		})
	}
}
