// Package probe selects, executes, and aggregates endpoint probes.
package probe

import (
	"net/http"

	"github.com/goodric/api-docs-tool/internal/endpoint"
)

// Policy controls which endpoints are actually probed.
type Policy struct {
	// Methods is an optional allow-list of upper-cased verbs. Empty
	// means no method filtering.
	Methods []string

	// Limit caps how many endpoints (after method filtering) are
	// probed. Zero or negative means no limit.
	Limit int

	// IncludeDelete opts in to probing DELETE endpoints. The exclusion
	// is applied after the limit: a DELETE inside the first N still
	// consumes its slot and is skipped.
	IncludeDelete bool

	// SkipAll selects zero endpoints; everything receives the skipped
	// sentinel outcome.
	SkipAll bool
}

// Selected is an endpoint chosen by the selector, tagged with its
// position in the original sequence so results can be merged back in
// document order.
type Selected struct {
	Index    int
	Endpoint endpoint.Endpoint
}

// Plan is the selector output: two disjoint order-preserving partitions
// whose union, by original index, is exactly the input sequence.
type Plan struct {
	ToProbe []Selected
	Skipped []Selected
}

// Select partitions endpoints according to the policy. The steps apply
// in fixed order: method allow-list, then the first-N limit, then the
// destructive-method exclusion.
func Select(endpoints []endpoint.Endpoint, policy Policy) Plan {
	var plan Plan

	if policy.SkipAll {
		for i, ep := range endpoints {
			plan.Skipped = append(plan.Skipped, Selected{Index: i, Endpoint: ep})
		}
		return plan
	}

	allowed := func(method string) bool {
		if len(policy.Methods) == 0 {
			return true
		}
		for _, m := range policy.Methods {
			if method == m {
				return true
			}
		}
		return false
	}

	taken := 0
	for i, ep := range endpoints {
		sel := Selected{Index: i, Endpoint: ep}

		if !allowed(ep.Method) {
			plan.Skipped = append(plan.Skipped, sel)
			continue
		}
		if policy.Limit > 0 && taken >= policy.Limit {
			plan.Skipped = append(plan.Skipped, sel)
			continue
		}
		taken++

		if ep.Method == http.MethodDelete && !policy.IncludeDelete {
			plan.Skipped = append(plan.Skipped, sel)
			continue
		}
		plan.ToProbe = append(plan.ToProbe, sel)
	}
	return plan
}

// Merge restores the full original sequence, attaching real outcomes to
// probed endpoints and the skipped sentinel to the rest. outcomes is
// indexed parallel to plan.ToProbe. The merge is keyed by original
// position, never re-sorted.
func (p Plan) Merge(total int, outcomes []endpoint.Outcome) []endpoint.Probed {
	merged := make([]endpoint.Probed, total)
	for i, sel := range p.ToProbe {
		merged[sel.Index] = endpoint.Probed{Endpoint: sel.Endpoint, Outcome: outcomes[i]}
	}
	for _, sel := range p.Skipped {
		merged[sel.Index] = endpoint.Probed{Endpoint: sel.Endpoint, Outcome: endpoint.Skipped()}
	}
	return merged
}
