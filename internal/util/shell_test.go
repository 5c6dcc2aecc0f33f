package util

import "testing"

func TestShellQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "'simple'"},
		{"with space", "'with space'"},
		{"with'quote", "'with'\\''quote'"},
		{"", "''"},
		{"$(command)", "'$(command)'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ShellQuote(tt.input)
			if got != tt.expected {
				t.Errorf("ShellQuote(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestQuoteArg(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"up", "up"},
		{"--build", "--build"},
		{"docker-compose.dev.yml", "docker-compose.dev.yml"},
		{"back end", "'back end'"},
		{"x;rm -rf /", "'x;rm -rf /'"},
		{"", "''"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := QuoteArg(tt.input); got != tt.expected {
				t.Errorf("QuoteArg(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatArgv(t *testing.T) {
	got := FormatArgv([]string{"docker", "compose", "logs", "-f", "my service"})
	want := "docker compose logs -f 'my service'"
	if got != want {
		t.Errorf("FormatArgv() = %q, want %q", got, want)
	}
}
