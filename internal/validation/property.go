package validation

import (
	"strings"

	"github.com/evcraddock/listings/internal/property"
)

var statusRule = "oneof=" + strings.Join(statusNames(), " ")

// PropertyCreate is the shape of a create request body.
var PropertyCreate = Schema{
	Name: "property",
	Fields: []Field{
		{Name: "title", Kind: String, Required: true},
		{Name: "description", Kind: String},
		{Name: "address", Kind: String, Required: true},
		{Name: "price", Kind: Number, Required: true, Rules: "gte=0"},
		{Name: "status", Kind: String, Rules: statusRule},
	},
}

// PropertyUpdate is the shape of an update request body. Every field is
// optional, so an empty object is valid.
var PropertyUpdate = Schema{
	Name:   "property update",
	Fields: optional(PropertyCreate.Fields),
}

// PropertyQuery is the shape of the list query string.
var PropertyQuery = Schema{
	Name: "property query",
	Fields: []Field{
		{Name: "status", Kind: String, Rules: statusRule},
		{Name: "limit", Kind: Integer, Rules: "gte=0"},
		{Name: "offset", Kind: Integer, Rules: "gte=0"},
	},
}

func optional(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Required = false
		// Present strings must still be non-empty where creation requires them.
		if fields[i].Required && f.Kind == String {
			f.Rules = joinRules("required", f.Rules)
		}
		out[i] = f
	}
	return out
}

func statusNames() []string {
	names := make([]string, 0, len(property.Statuses))
	for _, s := range property.Statuses {
		names = append(names, string(s))
	}
	return names
}
