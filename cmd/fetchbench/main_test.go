package main

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FETCHBENCH_TEST_VAR", "value")

	if got := getEnv("FETCHBENCH_TEST_VAR", "default"); got != "value" {
		t.Errorf("getEnv = %q, want %q", got, "value")
	}
	if got := getEnv("FETCHBENCH_TEST_UNSET", "default"); got != "default" {
		t.Errorf("getEnv = %q, want %q", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"valid", "5", 5},
		{"empty", "", 10},
		{"not a number", "ten", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("FETCHBENCH_TEST_INT", tt.value)
			}

			if got := getEnvInt("FETCHBENCH_TEST_INT", 10); got != tt.expected {
				t.Errorf("getEnvInt = %d, want %d", got, tt.expected)
			}
		})
	}
}
