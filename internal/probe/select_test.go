package probe

import (
	"testing"

	"github.com/goodric/api-docs-tool/internal/endpoint"
)

func eps(pairs ...[2]string) []endpoint.Endpoint {
	out := make([]endpoint.Endpoint, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, endpoint.Endpoint{
			Method:  p[0],
			Path:    p[1],
			FullURL: "https://api.example.com" + p[1],
		})
	}
	return out
}

// reconstruct merges both partitions back by index and checks the
// result is exactly the input, each endpoint appearing once.
func reconstruct(t *testing.T, input []endpoint.Endpoint, plan Plan) {
	t.Helper()

	seen := make(map[int]bool)
	check := func(sel Selected) {
		if seen[sel.Index] {
			t.Fatalf("index %d appears in both partitions", sel.Index)
		}
		seen[sel.Index] = true
		want := input[sel.Index]
		if sel.Endpoint.Method != want.Method || sel.Endpoint.Path != want.Path {
			t.Errorf("endpoint at index %d does not match input", sel.Index)
		}
	}
	for _, sel := range plan.ToProbe {
		check(sel)
	}
	for _, sel := range plan.Skipped {
		check(sel)
	}
	if len(seen) != len(input) {
		t.Errorf("partitions cover %d endpoints, want %d", len(seen), len(input))
	}
}

func TestSelect_NoPolicy(t *testing.T) {
	input := eps([2]string{"GET", "/a"}, [2]string{"POST", "/b"})
	plan := Select(input, Policy{})

	if len(plan.ToProbe) != 2 || len(plan.Skipped) != 0 {
		t.Errorf("partitions = %d/%d, want 2/0", len(plan.ToProbe), len(plan.Skipped))
	}
	reconstruct(t, input, plan)
}

func TestSelect_MethodFilter(t *testing.T) {
	input := eps([2]string{"GET", "/a"}, [2]string{"POST", "/b"}, [2]string{"GET", "/c"})
	plan := Select(input, Policy{Methods: []string{"GET"}})

	if len(plan.ToProbe) != 2 {
		t.Fatalf("len(ToProbe) = %d, want 2", len(plan.ToProbe))
	}
	if plan.ToProbe[0].Endpoint.Path != "/a" || plan.ToProbe[1].Endpoint.Path != "/c" {
		t.Errorf("method filter did not preserve relative order")
	}
	reconstruct(t, input, plan)
}

func TestSelect_Limit(t *testing.T) {
	input := eps([2]string{"GET", "/a"}, [2]string{"GET", "/b"}, [2]string{"GET", "/c"})
	plan := Select(input, Policy{Limit: 2})

	if len(plan.ToProbe) != 2 {
		t.Fatalf("len(ToProbe) = %d, want 2", len(plan.ToProbe))
	}
	if len(plan.Skipped) != 1 || plan.Skipped[0].Endpoint.Path != "/c" {
		t.Errorf("endpoint beyond the limit should be skipped")
	}
	reconstruct(t, input, plan)
}

func TestSelect_LimitAppliesAfterMethodFilter(t *testing.T) {
	input := eps(
		[2]string{"POST", "/a"},
		[2]string{"GET", "/b"},
		[2]string{"GET", "/c"},
	)
	plan := Select(input, Policy{Methods: []string{"GET"}, Limit: 1})

	if len(plan.ToProbe) != 1 || plan.ToProbe[0].Endpoint.Path != "/b" {
		t.Errorf("limit should count only method-filtered endpoints")
	}
	reconstruct(t, input, plan)
}

func TestSelect_DeleteExcludedByDefault(t *testing.T) {
	input := eps([2]string{"DELETE", "/a"}, [2]string{"GET", "/b"})
	plan := Select(input, Policy{})

	if len(plan.ToProbe) != 1 || plan.ToProbe[0].Endpoint.Method != "GET" {
		t.Errorf("DELETE should be excluded without the destructive flag")
	}
	reconstruct(t, input, plan)
}

func TestSelect_DeleteIncludedWhenOptedIn(t *testing.T) {
	input := eps([2]string{"DELETE", "/a"})
	plan := Select(input, Policy{IncludeDelete: true})

	if len(plan.ToProbe) != 1 {
		t.Errorf("DELETE should be probed with the destructive flag set")
	}
}

func TestSelect_DeleteConsumesLimitSlot(t *testing.T) {
	// GET /a then DELETE /a with limit 1: only GET is probed, and the
	// DELETE is skipped regardless of limit because the destructive
	// exclusion applies after the limit.
	input := eps([2]string{"GET", "/a"}, [2]string{"DELETE", "/a"})
	plan := Select(input, Policy{Limit: 1})

	if len(plan.ToProbe) != 1 || plan.ToProbe[0].Endpoint.Method != "GET" {
		t.Fatalf("ToProbe = %v, want exactly GET /a", plan.ToProbe)
	}
	reconstruct(t, input, plan)

	// A DELETE inside the first N consumes its slot and is still skipped.
	input = eps([2]string{"DELETE", "/a"}, [2]string{"GET", "/b"})
	plan = Select(input, Policy{Limit: 1})
	if len(plan.ToProbe) != 0 {
		t.Errorf("ToProbe = %v, want none: DELETE holds the only slot and is skipped", plan.ToProbe)
	}
	reconstruct(t, input, plan)
}

func TestSelect_SkipAll(t *testing.T) {
	input := eps([2]string{"GET", "/a"}, [2]string{"POST", "/b"})
	plan := Select(input, Policy{SkipAll: true, Methods: []string{"GET"}, Limit: 5})

	if len(plan.ToProbe) != 0 || len(plan.Skipped) != 2 {
		t.Errorf("skip-all should select zero endpoints")
	}
	reconstruct(t, input, plan)
}

func TestPlan_Merge(t *testing.T) {
	input := eps([2]string{"GET", "/a"}, [2]string{"DELETE", "/b"}, [2]string{"GET", "/c"})
	plan := Select(input, Policy{})

	outcomes := make([]endpoint.Outcome, len(plan.ToProbe))
	for i := range outcomes {
		outcomes[i] = endpoint.ClassifyStatus(200, 42)
	}

	merged := plan.Merge(len(input), outcomes)
	if len(merged) != 3 {
		t.Fatalf("len(merged) = %d, want 3", len(merged))
	}
	if merged[0].Outcome.Code() != 200 || merged[2].Outcome.Code() != 200 {
		t.Errorf("probed endpoints should carry their real outcomes")
	}
	if merged[1].Outcome.Kind != endpoint.KindSkipped || merged[1].Outcome.Code() != 0 {
		t.Errorf("skipped DELETE should carry the skipped sentinel")
	}
	for i, ep := range merged {
		if ep.Path != input[i].Path {
			t.Errorf("merged[%d].Path = %q, want original order", i, ep.Path)
		}
	}
}
