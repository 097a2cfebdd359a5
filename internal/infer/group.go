package infer

import (
	"fmt"

	"rill/internal/regions"
	"rill/internal/scopes"
)

type freeRegionsSameFn struct {
	sub   regions.BoundRegion
	sup   regions.BoundRegion
	scope regions.ScopeID
}

// Group rewrites a batch of solver errors so that conflicts between
// lifetime parameters of a single function collapse into one Grouped
// record, while everything else passes through in order. ok is false when
// the clusters span more than one function; the caller then reports the
// raw input unchanged. A non-nil error means the input or the result
// violated an internal invariant.
func (ctx *Context) Group(errs []ConflictRecord) ([]ConflictRecord, bool, error) {
	var (
		origins       []ProcessedErrorOrigin
		clusters      []SameRegions
		otherErrors   []ConflictRecord
		boundFailures []ConflictRecord
	)

	for i := range errs {
		e := errs[i]
		switch e.Kind {
		case ConflictConcrete:
			// Conformance checks carry their own explanation and must
			// never be folded into a parameter cluster.
			if e.Origin.Kind != OriginCompareImplMethod {
				if frs, ok := ctx.freeRegionsFromSameFn(e.Sub, e.Sup); ok {
					origins = append(origins, ProcessedErrorOrigin{
						Kind:   ProcessedConcrete,
						Origin: e.Origin,
						Sub:    e.Sub,
						Sup:    e.Sup,
					})
					clusters = appendToClusters(clusters, frs)
					continue
				}
			}
			otherErrors = append(otherErrors, e)

		case ConflictSubSup:
			if e.SubOrigin.Kind != OriginCompareImplMethod &&
				e.SupOrigin.Kind != OriginCompareImplMethod {
				if frs, ok := ctx.freeRegionsFromSameFn(e.Sub, e.Sup); ok {
					origins = append(origins, ProcessedErrorOrigin{
						Kind:      ProcessedVariable,
						VarOrigin: e.VarOrigin,
					})
					clusters = appendToClusters(clusters, frs)
					continue
				}
			}
			otherErrors = append(otherErrors, e)

		case ConflictGenericBound:
			boundFailures = append(boundFailures, e)

		case ConflictGrouped:
			return nil, false, fmt.Errorf("%w: solver emitted a grouped record", ErrInternal)

		default:
			return nil, false, fmt.Errorf("%w: unknown conflict kind %d", ErrInternal, e.Kind)
		}
	}

	var out []ConflictRecord
	if len(clusters) > 0 {
		// All clusters must sit in the same function, otherwise the
		// merged presentation would mislead; give up on grouping for the
		// whole batch.
		common := clusters[0].Scope
		for _, c := range clusters[1:] {
			if c.Scope != common {
				return nil, false, nil
			}
		}
		out = append(out, grouped(origins, clusters))
	}
	out = append(out, otherErrors...)
	if len(out) == 0 {
		out = append(out, boundFailures...)
	}
	if len(errs) > 0 && len(out) == 0 {
		return nil, false, fmt.Errorf("%w: non-empty input produced no reportable errors", ErrInternal)
	}
	return out, true, nil
}

// freeRegionsFromSameFn recognizes a conflict between two lifetimes bound
// on the signature of one function-like item.
func (ctx *Context) freeRegionsFromSameFn(sub, sup regions.Region) (freeRegionsSameFn, bool) {
	if !sub.IsFree() || !sup.IsFree() || sub.Scope != sup.Scope {
		return freeRegionsSameFn{}, false
	}
	node := ctx.Index.ScopeNode(sub.Scope)
	parent, ok := ctx.Index.Find(ctx.Index.Parent(node))
	if !ok {
		return freeRegionsSameFn{}, false
	}
	switch parent.Kind {
	case scopes.NodeItemFn, scopes.NodeImplMethod, scopes.NodeContractMethod:
		return freeRegionsSameFn{sub: sub.Bound, sup: sup.Bound, scope: sub.Scope}, true
	}
	return freeRegionsSameFn{}, false
}

// appendToClusters folds the pair into an existing cluster when the
// sup side is already present, otherwise opens a new cluster.
func appendToClusters(clusters []SameRegions, frs freeRegionsSameFn) []SameRegions {
	for i := range clusters {
		if clusters[i].Scope == frs.scope && clusters[i].Contains(frs.sup) {
			clusters[i].Push(frs.sub)
			return clusters
		}
	}
	return append(clusters, SameRegions{
		Scope:   frs.scope,
		Regions: []regions.BoundRegion{frs.sub, frs.sup},
	})
}
