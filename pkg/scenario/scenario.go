package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/decorset"
	"github.com/majeekg/view/pkg/widget"
)

// errUnknownKind is returned when a scenario record's "kind" field is
// neither "range" nor "point".
var errUnknownKind = errors.New("scenario: unknown decoration kind")

// Record is one decoration entry in a scenario document's JSON array: a
// range or point decoration plus every field the decoration model defines,
// flattened into a single shape so a scenario author doesn't need to know
// Go's RangeDescriptor/PointDescriptor split.
type Record struct {
	Attributes              map[string]string `json:"attributes,omitempty"`
	LineAttributes          map[string]string `json:"lineAttributes,omitempty"`
	Kind                    string            `json:"kind"`
	Class                   string            `json:"class,omitempty"`
	TagName                 string            `json:"tagName,omitempty"`
	CollapsedWidgetLabel    string            `json:"collapsedWidgetLabel,omitempty"`
	WidgetLabel             string            `json:"widgetLabel,omitempty"`
	LineAttributeOnlyWidget string            `json:"lineAttributeOnlyWidget,omitempty"`
	CollapsedWidgetHeight   float64           `json:"collapsedWidgetHeight,omitempty"`
	WidgetHeight            float64           `json:"widgetHeight,omitempty"`
	From                    int               `json:"from"`
	To                      int               `json:"to"`
	Side                    int               `json:"side,omitempty"`
	InclusiveStart          bool              `json:"inclusiveStart,omitempty"`
	InclusiveEnd            bool              `json:"inclusiveEnd,omitempty"`
	Collapsed               bool              `json:"collapsed,omitempty"`
}

// Document is a full scenario: a decoration list plus the optional
// before/after document text cmd/view's diff command diffs.
type Document struct {
	OldText     string   `json:"oldText,omitempty"`
	NewText     string   `json:"newText,omitempty"`
	Decorations []Record `json:"decorations"`
}

// Parse decodes a scenario document from raw JSON bytes. It does not
// validate against the schema; call Validate first if that matters to the
// caller (cmd/view's validate subcommand does both, separately, so it can
// report schema and decode errors differently).
func Parse(data []byte) (*Document, error) {
	var doc Document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}

	return &doc, nil
}

// Load reads and parses a scenario file, returning both the parsed document
// and the raw bytes (callers that also want to schema-validate or report
// file size need the bytes; re-reading the file a second time would be
// wasteful and racy).
func Load(path string) (*Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}

	return doc, data, nil
}

// Validate checks raw scenario JSON against the embedded schema.
func Validate(data []byte) (*gojsonschema.Result, error) {
	schemaBytes, err := SchemaFS.ReadFile("schema/" + schemaFileName)
	if err != nil {
		return nil, fmt.Errorf("scenario: read embedded schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("scenario: schema validation: %w", err)
	}

	return result, nil
}

// Decode converts every record into a decoration.Decoration, in document
// order. A range record with From >= To is a decode-time error
// (decoration.ErrInvalidRange), not a panic: scenario input is external and
// may be malformed.
func (d *Document) Decode() ([]decoration.Decoration, error) {
	out := make([]decoration.Decoration, 0, len(d.Decorations))

	for i, rec := range d.Decorations {
		deco, err := rec.toDecoration()
		if err != nil {
			return nil, fmt.Errorf("scenario: decoration %d: %w", i, err)
		}

		out = append(out, deco)
	}

	return out, nil
}

// Build decodes every record and assembles them into a single
// DecorationSet via decorset.Of.
func (d *Document) Build() (*decorset.Set, error) {
	decos, err := d.Decode()
	if err != nil {
		return nil, err
	}

	return decorset.Of(decos), nil
}

func (r Record) toDecoration() (decoration.Decoration, error) {
	switch r.Kind {
	case "range":
		desc := &decoration.RangeDescriptor{
			Attributes:     r.Attributes,
			LineAttributes: r.LineAttributes,
			Class:          r.Class,
			TagName:        r.TagName,
			InclusiveStart: r.InclusiveStart,
			InclusiveEnd:   r.InclusiveEnd,
			Collapsed:      r.Collapsed,
		}

		if r.CollapsedWidgetLabel != "" {
			desc.CollapsedWidget = widget.FixedHeight{Label: r.CollapsedWidgetLabel, Height: r.CollapsedWidgetHeight}
		}

		return decoration.Range(r.From, r.To, desc)
	case "point":
		desc := &decoration.PointDescriptor{
			LineAttributes: r.LineAttributes,
			Side:           r.Side,
		}

		switch {
		case r.WidgetLabel != "":
			desc.Widget = widget.FixedHeight{Label: r.WidgetLabel, Height: r.WidgetHeight}
		case r.LineAttributeOnlyWidget != "":
			desc.Widget = widget.LineAttributeOnly{Name: r.LineAttributeOnlyWidget}
		}

		return decoration.Point(r.From, desc), nil
	default:
		return decoration.Decoration{}, fmt.Errorf("%w: %q", errUnknownKind, r.Kind)
	}
}
