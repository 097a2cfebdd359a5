package types

import "fmt"

// Display renders the type as shown to users in expected/found pairs.
func (in *Interner) Display(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid type>"
	}
	switch tt.Kind {
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindReference:
		return "&" + in.Display(tt.Elem)
	case KindNamed, KindContract:
		info, ok := in.NominalInfo(id)
		if !ok {
			return "<invalid type>"
		}
		return in.names.MustLookup(info.Path)
	case KindProjection:
		info, ok := in.ProjectionInfo(id)
		if !ok {
			return "<invalid type>"
		}
		return fmt.Sprintf("<%s as %s>::%s",
			in.Display(info.Base),
			in.Display(info.Contract),
			in.names.MustLookup(info.Assoc))
	case KindParam:
		return in.names.MustLookup(tt.Name)
	case KindInfer:
		return fmt.Sprintf("_#%d", tt.Payload)
	case KindError:
		return "{error}"
	}
	return "<invalid type>"
}

// SortString names the sort of declaration a type comes from, used to
// disambiguate expected/found pairs that print identically.
func (in *Interner) SortString(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "invalid type"
	}
	switch tt.Kind {
	case KindNamed, KindContract:
		info, ok := in.NominalInfo(id)
		if !ok {
			return "invalid type"
		}
		n := fmt.Sprintf("%s `%s`", info.Kind, in.names.MustLookup(info.Path))
		if info.Unit != LocalUnit {
			if unit := in.UnitName(info.Unit); unit != "" {
				n += fmt.Sprintf(" from unit `%s`", unit)
			}
		}
		return n
	case KindProjection:
		return "associated type"
	case KindParam:
		return fmt.Sprintf("type parameter `%s`", in.names.MustLookup(tt.Name))
	case KindReference:
		return "reference"
	default:
		return "primitive type " + tt.Kind.String()
	}
}

// IsPrimitive reports whether the type is a primitive needing no
// elaboration in an expected/found line.
func (in *Interner) IsPrimitive(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind.IsPrimitive()
}

// ReferencesError reports whether the type still contains error or
// unresolved inference placeholders. Diagnostics derived from such types
// are uninformative and get suppressed.
func (in *Interner) ReferencesError(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return true
	}
	switch tt.Kind {
	case KindError, KindInfer:
		return true
	case KindReference:
		return in.ReferencesError(tt.Elem)
	case KindProjection:
		info, ok := in.ProjectionInfo(id)
		if !ok {
			return true
		}
		return in.ReferencesError(info.Base) || in.ReferencesError(info.Contract)
	}
	return false
}

// NominalPath returns the printed path and originating unit for named and
// contract types. ok is false for every other kind.
func (in *Interner) NominalPath(id TypeID) (path string, unit UnitID, ok bool) {
	info, ok := in.NominalInfo(id)
	if !ok {
		return "", LocalUnit, false
	}
	return in.names.MustLookup(info.Path), info.Unit, true
}
