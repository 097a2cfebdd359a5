package infer

import "rill/internal/regions"

// ConflictKind discriminates ConflictRecord.
type ConflictKind uint8

const (
	// ConflictConcrete: two concrete regions failed the outlives check.
	ConflictConcrete ConflictKind = iota
	// ConflictGenericBound: a generic could not be shown to outlive a
	// required region.
	ConflictGenericBound
	// ConflictSubSup: an inference variable received contradictory lower
	// and upper bounds.
	ConflictSubSup
	// ConflictGrouped: produced only by grouping; never appears in solver
	// output.
	ConflictGrouped
)

// ConflictRecord is one region error out of the solver. Kind selects the
// payload:
//
//	ConflictConcrete:     Origin, Sub, Sup
//	ConflictGenericBound: Origin, BoundKind, Region (the required lifetime)
//	ConflictSubSup:       VarOrigin, SubOrigin, Sub, SupOrigin, Sup
//	ConflictGrouped:      Origins, Clusters
type ConflictRecord struct {
	Kind      ConflictKind
	Origin    SubregionOrigin
	Sub       regions.Region
	Sup       regions.Region
	VarOrigin RegionVariableOrigin
	SubOrigin SubregionOrigin
	SupOrigin SubregionOrigin
	BoundKind regions.GenericKind
	Region    regions.Region
	Origins   []ProcessedErrorOrigin
	Clusters  []SameRegions
}

// ConcreteFailure records that origin required Sub <= Sup for two known
// regions and the check failed.
func ConcreteFailure(origin SubregionOrigin, sub, sup regions.Region) ConflictRecord {
	return ConflictRecord{Kind: ConflictConcrete, Origin: origin, Sub: sub, Sup: sup}
}

// GenericBoundFailure records that origin required the generic kind to
// outlive region and no bound proves it.
func GenericBoundFailure(origin SubregionOrigin, kind regions.GenericKind, r regions.Region) ConflictRecord {
	return ConflictRecord{Kind: ConflictGenericBound, Origin: origin, BoundKind: kind, Region: r}
}

// SubSupConflict records contradictory bounds on the inference variable
// created at varOrigin: subOrigin required it to outlive sub while
// supOrigin required sup to outlive it.
func SubSupConflict(
	varOrigin RegionVariableOrigin,
	subOrigin SubregionOrigin, sub regions.Region,
	supOrigin SubregionOrigin, sup regions.Region,
) ConflictRecord {
	return ConflictRecord{
		Kind:      ConflictSubSup,
		VarOrigin: varOrigin,
		SubOrigin: subOrigin,
		Sub:       sub,
		SupOrigin: supOrigin,
		Sup:       sup,
	}
}

func grouped(origins []ProcessedErrorOrigin, clusters []SameRegions) ConflictRecord {
	return ConflictRecord{Kind: ConflictGrouped, Origins: origins, Clusters: clusters}
}

// SameRegions is one cluster of signature lifetimes from a single function
// that conflicted with each other.
type SameRegions struct {
	Scope   regions.ScopeID
	Regions []regions.BoundRegion
}

// Contains reports whether the cluster already holds the bound region.
func (s *SameRegions) Contains(b regions.BoundRegion) bool {
	for _, r := range s.Regions {
		if r == b {
			return true
		}
	}
	return false
}

// Push appends the bound region unless it is already present.
func (s *SameRegions) Push(b regions.BoundRegion) {
	if !s.Contains(b) {
		s.Regions = append(s.Regions, b)
	}
}

// ProcessedOriginKind discriminates ProcessedErrorOrigin.
type ProcessedOriginKind uint8

const (
	// ProcessedConcrete preserves a grouped concrete failure.
	ProcessedConcrete ProcessedOriginKind = iota
	// ProcessedVariable preserves the variable origin of a grouped
	// sub/sup conflict.
	ProcessedVariable
)

// ProcessedErrorOrigin retains, per grouped error, what is needed to emit
// its individual report.
type ProcessedErrorOrigin struct {
	Kind      ProcessedOriginKind
	Origin    SubregionOrigin
	Sub       regions.Region
	Sup       regions.Region
	VarOrigin RegionVariableOrigin
}
