package cli

import (
	"testing"
)

func TestAddRequiresFields(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no flags", []string{"add"}},
		{"missing price", []string{"add", "--title", "T", "--address", "A"}},
		{"missing title", []string{"add", "--address", "A", "--price", "1"}},
		{"positional arg", []string{"add", "1 Elm St", "--title", "T", "--address", "A", "--price", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestListRejectsArgs(t *testing.T) {
	_, err := executeCommand("list", "extra")
	if err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestShowRequiresID(t *testing.T) {
	_, err := executeCommand("show")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestIDArgsRejectNonNumeric(t *testing.T) {
	commands := map[string][]string{
		"show":   nil,
		"remove": nil,
		"update": {"--title", "x"},
	}
	for name, extra := range commands {
		for _, id := range []string{"abc", "0", "1.5"} {
			t.Run(name+" "+id, func(t *testing.T) {
				args := append([]string{name, id, "--server", "http://127.0.0.1:1"}, extra...)
				_, err := executeCommand(args...)
				if err == nil {
					t.Fatal("expected error for invalid ID")
				}
			})
		}
	}
}

func TestUpdateRequiresAField(t *testing.T) {
	_, err := executeCommand("update", "1", "--server", "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error when no fields are given")
	}
}
