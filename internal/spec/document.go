// Package spec models OpenAPI/Swagger-style documents for endpoint extraction.
//
// Only the subset of the format the prober consumes is modelled: the
// "paths" object, the "servers" list, and the "info" block. Paths and
// their operations are kept as ordered slices rather than maps so the
// report rows come out in the document's declared order.
package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Info holds specification-level metadata.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
}

// Server is one entry of the document's servers list.
type Server struct {
	URL string `json:"url" yaml:"url"`
}

// Operation is one method key under a path, with its metadata.
// Method is the raw key as declared; callers decide whether it is an
// HTTP verb. Metadata fields default to empty when absent.
type Operation struct {
	Method      string
	Summary     string
	Description string
	OperationID string
	Tags        []string
}

// PathItem is one path with its operations in declared order.
type PathItem struct {
	Path       string
	Operations []Operation
}

// Document is a parsed specification document.
type Document struct {
	Info    Info
	Servers []Server
	Paths   []PathItem
}

// operationMeta mirrors the operation object fields we extract.
type operationMeta struct {
	Summary     string   `json:"summary" yaml:"summary"`
	Description string   `json:"description" yaml:"description"`
	OperationID string   `json:"operationId" yaml:"operationId"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// Parse decodes a specification document from raw bytes. JSON is tried
// first, then YAML. A body that is itself one JSON-encoded string is
// unquoted once before parsing (some servers double-encode the document).
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	// Best-effort unwrap of a double-encoded document.
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err == nil {
			trimmed = bytes.TrimSpace([]byte(inner))
		}
	}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		return parseJSON(trimmed)
	}

	doc, yerr := parseYAML(trimmed)
	if yerr != nil {
		return nil, fmt.Errorf("document is neither valid JSON nor YAML: %w", yerr)
	}
	return doc, nil
}

// parseJSON walks the document with a token decoder so the declared
// order of paths and methods is preserved.
func parseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	doc := &Document{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		switch key {
		case "info":
			if err := dec.Decode(&doc.Info); err != nil {
				return nil, fmt.Errorf("decoding info: %w", err)
			}
		case "servers":
			if err := dec.Decode(&doc.Servers); err != nil {
				return nil, fmt.Errorf("decoding servers: %w", err)
			}
		case "paths":
			paths, err := parseJSONPaths(dec)
			if err != nil {
				return nil, fmt.Errorf("decoding paths: %w", err)
			}
			doc.Paths = paths
		default:
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func parseJSONPaths(dec *json.Decoder) ([]PathItem, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var paths []PathItem
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		path, _ := tok.(string)

		ops, err := parseJSONOperations(dec)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", path, err)
		}
		paths = append(paths, PathItem{Path: path, Operations: ops})
	}

	// Consume closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return paths, nil
}

func parseJSONOperations(dec *json.Decoder) ([]Operation, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		// A path item that is not an object carries no operations.
		return nil, skipRemainder(dec, tok)
	}

	var ops []Operation
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		method, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}

		op := Operation{Method: method}
		var meta operationMeta
		// Non-object values (parameter lists, vendor extensions) are
		// kept as bare operations; the normalizer filters them out.
		if json.Unmarshal(raw, &meta) == nil {
			op.Summary = meta.Summary
			op.Description = meta.Description
			op.OperationID = meta.OperationID
			op.Tags = meta.Tags
		}
		ops = append(ops, op)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return ops, nil
}

// parseYAML decodes a YAML document via the node API, which keeps
// mapping keys in declared order.
func parseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("unexpected YAML document structure")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level YAML node is not a mapping")
	}

	doc := &Document{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value
		val := top.Content[i+1]

		switch key {
		case "info":
			if err := val.Decode(&doc.Info); err != nil {
				return nil, fmt.Errorf("decoding info: %w", err)
			}
		case "servers":
			if err := val.Decode(&doc.Servers); err != nil {
				return nil, fmt.Errorf("decoding servers: %w", err)
			}
		case "paths":
			paths, err := parseYAMLPaths(val)
			if err != nil {
				return nil, fmt.Errorf("decoding paths: %w", err)
			}
			doc.Paths = paths
		}
	}
	return doc, nil
}

func parseYAMLPaths(node *yaml.Node) ([]PathItem, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("paths is not a mapping")
	}

	var paths []PathItem
	for i := 0; i+1 < len(node.Content); i += 2 {
		path := node.Content[i].Value
		item := node.Content[i+1]

		var ops []Operation
		if item.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(item.Content); j += 2 {
				method := item.Content[j].Value
				op := Operation{Method: method}
				var meta operationMeta
				if item.Content[j+1].Decode(&meta) == nil {
					op.Summary = meta.Summary
					op.Description = meta.Description
					op.OperationID = meta.OperationID
					op.Tags = meta.Tags
				}
				ops = append(ops, op)
			}
		}
		paths = append(paths, PathItem{Path: path, Operations: ops})
	}
	return paths, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// skipValue discards the next JSON value.
func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}

// skipRemainder discards the rest of a compound value whose opening
// token has already been consumed.
func skipRemainder(dec *json.Decoder, tok json.Token) error {
	if _, ok := tok.(json.Delim); !ok {
		return nil // scalar, already consumed
	}
	depth := 1
	for depth > 0 {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := t.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// OperationCount returns the total number of (path, method) pairs,
// including non-verb keys.
func (d *Document) OperationCount() int {
	n := 0
	for _, p := range d.Paths {
		n += len(p.Operations)
	}
	return n
}

// LooksLikeSpec reports whether the document carries a paths object at all.
func (d *Document) LooksLikeSpec() bool {
	return len(d.Paths) > 0
}

// TitleOrDefault returns the info title, or a placeholder when absent.
func (d *Document) TitleOrDefault() string {
	if strings.TrimSpace(d.Info.Title) == "" {
		return "API Documentation"
	}
	return d.Info.Title
}
