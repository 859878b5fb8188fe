package main

import "testing"

func TestMapLogLevel(t *testing.T) {
	cases := map[string]string{
		"warning":  "warn",
		"critical": "fatal",
		"debug":    "debug",
		"info":     "info",
		"error":    "error",
	}
	for in, want := range cases {
		if got := mapLogLevel(in); got != want {
			t.Errorf("mapLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
