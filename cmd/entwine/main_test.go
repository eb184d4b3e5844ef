package main

import "testing"

func TestRunFlagValidation(t *testing.T) {
	tests := []struct {
		name    string
		listen  string
		connect string
		player  string
		side    int
	}{
		{"neither listen nor connect", "", "", "alice", 20},
		{"both listen and connect", ":8080", "ws://localhost:8080/ws", "alice", 20},
		{"missing name", ":8080", "", "", 20},
		{"side too small", ":8080", "", "alice", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.listen, tt.connect, tt.player, tt.side, "warn"); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
