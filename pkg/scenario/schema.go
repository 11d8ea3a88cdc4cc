// Package scenario loads the JSON input format cmd/view's validate, inspect,
// chart and diff subcommands use to build a DecorationSet without writing
// Go: a flat list
// of range/point decoration records plus optional before/after document
// text, validated against an embedded JSON Schema.
package scenario

import "embed"

// SchemaFS contains the embedded scenario JSON Schema, grounded on the
// teacher's pkg/uast/pkg/spec.UASTSchemaFS embed-a-schema-next-to-its-loader
// pattern.
//
//go:embed schema/scenario-schema.json
var SchemaFS embed.FS

const schemaFileName = "scenario-schema.json"
