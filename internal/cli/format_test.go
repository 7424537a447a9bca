package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/listings/internal/client"
	"github.com/evcraddock/listings/internal/property"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		expected string
	}{
		{"zero", 0, "0"},
		{"small", 999, "999"},
		{"thousands", 250000, "250,000"},
		{"millions", 1000000, "1,000,000"},
		{"cents", 1234.5, "1,234.50"},
		{"rounds up", 99.999, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatPrice(tt.price)
			if result != tt.expected {
				t.Errorf("formatPrice(%v) = %q, want %q", tt.price, result, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
		{"multibyte", "ñandú ñandú", 8, "ñandú..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestPrintPropertyTable(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	limit, offset := 2, 0

	resp := &client.ListResponse{
		Properties: []property.Property{
			{ID: 1, Title: "Bungalow", Address: "1 Elm St", Price: 325000, Status: property.StatusAvailable, CreatedAt: now, UpdatedAt: now},
			{ID: 2, Title: "Loft", Address: "2 Oak Ave", Price: 199999.99, Status: property.StatusPending, CreatedAt: now, UpdatedAt: now},
		},
		Pagination: property.Pagination{Total: 5, Limit: &limit, Offset: &offset},
	}

	var buf bytes.Buffer
	if err := printPropertyTable(&buf, resp); err != nil {
		t.Fatalf("print: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Bungalow", "$325,000", "$199,999.99", "pending", "Showing 1-2 of 5 properties"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPropertyTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printPropertyTable(&buf, &client.ListResponse{}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "No properties found.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
