package endpoint

import (
	"testing"

	"github.com/goodric/api-docs-tool/internal/spec"
)

func doc(paths ...spec.PathItem) *spec.Document {
	return &spec.Document{Paths: paths}
}

func TestNormalize_CountMatchesVerbPairs(t *testing.T) {
	d := doc(
		spec.PathItem{Path: "/users", Operations: []spec.Operation{
			{Method: "get"}, {Method: "post"}, {Method: "parameters"},
		}},
		spec.PathItem{Path: "/users/{id}", Operations: []spec.Operation{
			{Method: "get"}, {Method: "delete"}, {Method: "x-internal"},
		}},
	)

	endpoints, err := Normalize(d, "https://api.example.com/v2/api-docs", "")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(endpoints) != 4 {
		t.Fatalf("len(endpoints) = %d, want 4 (non-verb keys excluded)", len(endpoints))
	}
}

func TestNormalize_PreservesDocumentOrder(t *testing.T) {
	d := doc(
		spec.PathItem{Path: "/b", Operations: []spec.Operation{{Method: "post"}}},
		spec.PathItem{Path: "/a", Operations: []spec.Operation{{Method: "delete"}, {Method: "get"}}},
	)

	endpoints, err := Normalize(d, "https://api.example.com/docs", "")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	want := []struct{ path, method string }{
		{"/b", "POST"}, {"/a", "DELETE"}, {"/a", "GET"},
	}
	if len(endpoints) != len(want) {
		t.Fatalf("len(endpoints) = %d, want %d", len(endpoints), len(want))
	}
	for i, w := range want {
		if endpoints[i].Path != w.path || endpoints[i].Method != w.method {
			t.Errorf("endpoints[%d] = %s %s, want %s %s",
				i, endpoints[i].Method, endpoints[i].Path, w.method, w.path)
		}
	}
}

func TestNormalize_DuplicatePathsPreserved(t *testing.T) {
	d := doc(
		spec.PathItem{Path: "/a", Operations: []spec.Operation{{Method: "get"}}},
		spec.PathItem{Path: "/a", Operations: []spec.Operation{{Method: "get"}}},
	)

	endpoints, err := Normalize(d, "https://api.example.com/docs", "")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(endpoints) != 2 {
		t.Errorf("len(endpoints) = %d, want 2 (duplicates preserved)", len(endpoints))
	}
}

func TestNormalize_LeadingSlashInserted(t *testing.T) {
	d := doc(spec.PathItem{Path: "users", Operations: []spec.Operation{{Method: "get"}}})

	endpoints, err := Normalize(d, "https://api.example.com/v2/api-docs", "")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if endpoints[0].FullURL != "https://api.example.com/users" {
		t.Errorf("FullURL = %q, want https://api.example.com/users", endpoints[0].FullURL)
	}
	// The declared path stays as-is.
	if endpoints[0].Path != "users" {
		t.Errorf("Path = %q, want unmodified %q", endpoints[0].Path, "users")
	}
}

func TestNormalize_PathParametersLeftLiteral(t *testing.T) {
	d := doc(spec.PathItem{Path: "/users/{id}", Operations: []spec.Operation{{Method: "get"}}})

	endpoints, err := Normalize(d, "https://api.example.com/docs", "")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if endpoints[0].FullURL != "https://api.example.com/users/{id}" {
		t.Errorf("FullURL = %q, want template left literal", endpoints[0].FullURL)
	}
}

func TestNormalize_MetadataDefaults(t *testing.T) {
	d := doc(spec.PathItem{Path: "/a", Operations: []spec.Operation{{Method: "get"}}})

	endpoints, err := Normalize(d, "https://api.example.com/docs", "")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	ep := endpoints[0]
	if ep.Summary != "" || ep.Description != "" || ep.OperationID != "" {
		t.Errorf("metadata should default to empty strings, got %+v", ep)
	}
	if ep.Tags == nil || len(ep.Tags) != 0 {
		t.Errorf("Tags = %v, want empty slice", ep.Tags)
	}
}

func TestResolveBase_OverrideWins(t *testing.T) {
	d := &spec.Document{Servers: []spec.Server{{URL: "https://srv.example.com/"}}}

	base, err := ResolveBase(d, "https://doc.example.com/api-docs", "https://override.example.com/")
	if err != nil {
		t.Fatalf("ResolveBase() error = %v", err)
	}
	if base != "https://override.example.com" {
		t.Errorf("base = %q, want trimmed override", base)
	}
}

func TestResolveBase_FirstServerEntry(t *testing.T) {
	d := &spec.Document{Servers: []spec.Server{
		{URL: "https://first.example.com/"},
		{URL: "https://second.example.com"},
	}}

	base, err := ResolveBase(d, "https://doc.example.com/api-docs", "")
	if err != nil {
		t.Fatalf("ResolveBase() error = %v", err)
	}
	if base != "https://first.example.com" {
		t.Errorf("base = %q, want first servers entry trimmed", base)
	}
}

func TestResolveBase_FallsBackToDocumentURL(t *testing.T) {
	base, err := ResolveBase(&spec.Document{}, "https://api.example.com/v2/api-docs", "")
	if err != nil {
		t.Fatalf("ResolveBase() error = %v", err)
	}
	if base != "https://api.example.com" {
		t.Errorf("base = %q, want scheme+authority of document URL", base)
	}
}

func TestResolveBase_KeepsPort(t *testing.T) {
	base, err := ResolveBase(&spec.Document{}, "http://localhost:8080/v2/api-docs", "")
	if err != nil {
		t.Fatalf("ResolveBase() error = %v", err)
	}
	if base != "http://localhost:8080" {
		t.Errorf("base = %q, want http://localhost:8080", base)
	}
}

func TestResolveBase_NoUsableSource(t *testing.T) {
	if _, err := ResolveBase(&spec.Document{}, "not-a-url", ""); err == nil {
		t.Error("ResolveBase() should fail when no base can be derived")
	}
}
