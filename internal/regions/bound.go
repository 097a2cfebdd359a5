package regions

import (
	"fmt"

	"rill/internal/source"
)

// BoundRegionKind discriminates the BoundRegion sum type.
type BoundRegionKind uint8

const (
	// BoundNamed is a lifetime parameter written in the source.
	BoundNamed BoundRegionKind = iota
	// BoundAnonymous is an elided lifetime, numbered by position.
	BoundAnonymous
	// BoundFresh is a lifetime invented during inference.
	BoundFresh
)

// BoundRegion identifies one lifetime parameter of a binder. Comparable:
// two bound regions are "the same" only when every field matches, and
// identity across clusters is never assumed.
type BoundRegion struct {
	Kind  BoundRegionKind
	Name  source.StringID // BoundNamed
	Index uint32          // BoundAnonymous
	ID    uint32          // BoundFresh
}

// NamedBound returns a named bound region.
func NamedBound(name source.StringID) BoundRegion {
	return BoundRegion{Kind: BoundNamed, Name: name}
}

// AnonymousBound returns the idx-th elided lifetime of a signature.
func AnonymousBound(idx uint32) BoundRegion {
	return BoundRegion{Kind: BoundAnonymous, Index: idx}
}

// FreshBound returns an inference-invented bound region.
func FreshBound(id uint32) BoundRegion {
	return BoundRegion{Kind: BoundFresh, ID: id}
}

// Display renders the bound region the way it appears in messages: named
// regions print their name, the rest print nothing.
func (b BoundRegion) Display(names *source.Interner) string {
	if b.Kind == BoundNamed {
		if s, ok := names.Lookup(b.Name); ok {
			return s
		}
	}
	return ""
}

// DebugString renders the bound region for internal fallback messages.
func (b BoundRegion) DebugString() string {
	switch b.Kind {
	case BoundNamed:
		return fmt.Sprintf("BrNamed(%d)", b.Name)
	case BoundAnonymous:
		return fmt.Sprintf("BrAnon(%d)", b.Index)
	case BoundFresh:
		return fmt.Sprintf("BrFresh(%d)", b.ID)
	}
	return "BrInvalid"
}
