package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"rill/internal/infer"
	"rill/internal/regions"
	"rill/internal/scopes"
	"rill/internal/source"
	"rill/internal/types"
)

// ErrSchema is returned for batch files written by an incompatible
// serializer version.
var ErrSchema = errors.New("unsupported batch schema")

// ErrMalformed is returned when a batch file violates its own internal
// references (dangling table indexes, wire-invalid record kinds).
var ErrMalformed = errors.New("malformed batch")

// Unit is one decoded compilation unit: the collaborators the reporting
// pass consumes, rebuilt from the wire tables.
type Unit struct {
	Name   string
	Files  *source.FileSet
	Names  *source.Interner
	Types  *types.Interner
	Tree   *scopes.Tree
	Errors []infer.ConflictRecord
}

// Load reads and decodes a batch file.
func Load(path string) (*Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	u, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return u, nil
}

// Decode reads one msgpack-encoded batch.
func Decode(r io.Reader) (*Unit, error) {
	var w batchWire
	if err := msgpack.NewDecoder(r).Decode(&w); err != nil {
		return nil, err
	}
	if w.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, w.Schema, SchemaVersion)
	}
	d := &decoder{wire: &w}
	return d.run()
}

type decoder struct {
	wire  *batchWire
	unit  *Unit
	files []source.FileID
	names []source.StringID
	units []types.UnitID
	nodes []scopes.NodeID
	types []types.TypeID
}

func (d *decoder) run() (*Unit, error) {
	names := source.NewInterner()
	d.unit = &Unit{
		Name:  d.wire.Unit,
		Files: source.NewFileSet(),
		Names: names,
		Types: types.NewInterner(names),
		Tree:  scopes.NewTree(),
	}

	d.names = make([]source.StringID, len(d.wire.Names))
	for i, s := range d.wire.Names {
		d.names[i] = names.Intern(s)
	}
	d.units = make([]types.UnitID, len(d.wire.Units))
	for i, name := range d.wire.Units {
		d.units[i] = d.unit.Types.RegisterUnit(name)
	}
	d.files = make([]source.FileID, len(d.wire.Files))
	for i, f := range d.wire.Files {
		d.files[i] = d.unit.Files.Add(f.Path, f.Content, 0)
	}

	if err := d.decodeNodes(); err != nil {
		return nil, err
	}
	if err := d.decodeTypes(); err != nil {
		return nil, err
	}
	if err := d.decodeErrors(); err != nil {
		return nil, err
	}
	return d.unit, nil
}

func (d *decoder) decodeNodes() error {
	d.nodes = make([]scopes.NodeID, len(d.wire.Nodes))
	for i, n := range d.wire.Nodes {
		parent := scopes.NoNodeID
		if n.Parent != 0 {
			// Parents must come earlier in the table.
			if int(n.Parent) > i {
				return fmt.Errorf("%w: node %d references parent %d", ErrMalformed, i+1, n.Parent)
			}
			parent = d.nodes[n.Parent-1]
		}
		span, err := d.span(n.Span)
		if err != nil {
			return err
		}
		d.nodes[i] = d.unit.Tree.AddNode(scopes.NodeKind(n.Kind), parent, span)
	}
	for _, s := range d.wire.Scopes {
		node, err := d.node(s.Node)
		if err != nil {
			return err
		}
		d.unit.Tree.BindScope(regions.ScopeID(s.Scope), node, regions.Extent{
			Kind:      regions.ExtentKind(s.Extent),
			FirstStmt: s.FirstStmt,
		})
	}
	return nil
}

func (d *decoder) decodeTypes() error {
	in := d.unit.Types
	builtins := in.Builtins()
	d.types = make([]types.TypeID, len(d.wire.Types))
	for i, t := range d.wire.Types {
		var id types.TypeID
		switch types.Kind(t.Kind) {
		case types.KindUnit:
			id = builtins.Unit
		case types.KindBool:
			id = builtins.Bool
		case types.KindInt:
			id = builtins.Int
		case types.KindUint:
			id = builtins.Uint
		case types.KindFloat:
			id = builtins.Float
		case types.KindString:
			id = builtins.String
		case types.KindError:
			id = builtins.Error
		case types.KindReference:
			elem, err := d.typeAt(t.Elem, i)
			if err != nil {
				return err
			}
			id = in.Reference(elem)
		case types.KindParam:
			name, err := d.name(t.Name)
			if err != nil {
				return err
			}
			id = in.Param(name)
		case types.KindNamed, types.KindContract:
			path, err := d.name(t.Path)
			if err != nil {
				return err
			}
			unit, err := d.unitID(t.Unit)
			if err != nil {
				return err
			}
			id = in.RegisterNominal(path, types.NominalKind(t.Nominal), unit, source.Span{})
		case types.KindProjection:
			base, err := d.typeAt(t.Base, i)
			if err != nil {
				return err
			}
			contract, err := d.typeAt(t.Contract, i)
			if err != nil {
				return err
			}
			assoc, err := d.name(t.Assoc)
			if err != nil {
				return err
			}
			id = in.RegisterProjection(base, contract, assoc)
		case types.KindInfer:
			id = in.InferVar(t.Infer)
		default:
			return fmt.Errorf("%w: type %d has kind %d", ErrMalformed, i+1, t.Kind)
		}
		d.types[i] = id
	}
	return nil
}

func (d *decoder) decodeErrors() error {
	d.unit.Errors = make([]infer.ConflictRecord, 0, len(d.wire.Errors))
	for i, e := range d.wire.Errors {
		rec, err := d.conflict(e)
		if err != nil {
			return fmt.Errorf("error %d: %w", i, err)
		}
		d.unit.Errors = append(d.unit.Errors, rec)
	}
	return nil
}

func (d *decoder) conflict(e errorWire) (infer.ConflictRecord, error) {
	switch infer.ConflictKind(e.Kind) {
	case infer.ConflictConcrete:
		origin, err := d.origin(e.Origin)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		sub, err := d.region(e.Sub)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		sup, err := d.region(e.Sup)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		return infer.ConcreteFailure(origin, sub, sup), nil

	case infer.ConflictGenericBound:
		origin, err := d.origin(e.Origin)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		boundType, err := d.typeRef(e.BoundType)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		region, err := d.region(e.Region)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		kind := regions.GenericKind{Tag: regions.GenericKindTag(e.BoundTag), Type: boundType}
		return infer.GenericBoundFailure(origin, kind, region), nil

	case infer.ConflictSubSup:
		varOrigin, err := d.varOrigin(e.VarOrigin)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		subOrigin, err := d.origin(e.SubOrigin)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		supOrigin, err := d.origin(e.SupOrigin)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		sub, err := d.region(e.Sub)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		sup, err := d.region(e.Sup)
		if err != nil {
			return infer.ConflictRecord{}, err
		}
		return infer.SubSupConflict(varOrigin, subOrigin, sub, supOrigin, sup), nil
	}
	return infer.ConflictRecord{}, fmt.Errorf("%w: conflict kind %d", ErrMalformed, e.Kind)
}

func (d *decoder) origin(o originWire) (infer.SubregionOrigin, error) {
	span, err := d.span(o.Span)
	if err != nil {
		return infer.SubregionOrigin{}, err
	}
	out := infer.SubregionOrigin{
		Kind: infer.OriginKind(o.Kind),
		Span: span,
	}
	if o.Type != 0 {
		if out.Type, err = d.typeRef(o.Type); err != nil {
			return infer.SubregionOrigin{}, err
		}
	}
	if o.Var != 0 {
		name, err := d.nameID(o.Var)
		if err != nil {
			return infer.SubregionOrigin{}, err
		}
		out.Var = name
	}
	if o.HasTrace {
		cause, err := d.cause(o.Cause)
		if err != nil {
			return infer.SubregionOrigin{}, err
		}
		expected, err := d.typeRef(o.Expected)
		if err != nil {
			return infer.SubregionOrigin{}, err
		}
		found, err := d.typeRef(o.Found)
		if err != nil {
			return infer.SubregionOrigin{}, err
		}
		out.Trace = &infer.TypeTrace{
			Cause: cause,
			Values: infer.ValuePairs{
				Kind:     infer.PairsKind(o.Pairs),
				Expected: expected,
				Found:    found,
			},
		}
	}
	if o.Compare != nil {
		cmpSpan, err := d.span(o.Compare.Span)
		if err != nil {
			return infer.SubregionOrigin{}, err
		}
		item, err := d.nameID(o.Compare.Item)
		if err != nil {
			return infer.SubregionOrigin{}, err
		}
		implItem, err := d.node(o.Compare.ImplItem)
		if err != nil {
			return infer.SubregionOrigin{}, err
		}
		contractItem, err := d.node(o.Compare.ContractItem)
		if err != nil {
			return infer.SubregionOrigin{}, err
		}
		out.Compare = &infer.CompareImplMethod{
			Span:         cmpSpan,
			ItemName:     item,
			ImplItem:     implItem,
			ContractItem: contractItem,
			Lint:         o.Compare.Lint,
		}
	}
	return out, nil
}

func (d *decoder) varOrigin(v varOriginWire) (infer.RegionVariableOrigin, error) {
	span, err := d.span(v.Span)
	if err != nil {
		return infer.RegionVariableOrigin{}, err
	}
	out := infer.RegionVariableOrigin{
		Kind: infer.VarOriginKind(v.Kind),
		Span: span,
		Site: infer.LateBoundSite(v.Site),
		Bound: regions.BoundRegion{
			Kind:  regions.BoundRegionKind(v.BoundKind),
			Index: v.BoundIndex,
			ID:    v.BoundID,
		},
	}
	if v.BoundName != 0 {
		if out.Bound.Name, err = d.nameID(v.BoundName); err != nil {
			return infer.RegionVariableOrigin{}, err
		}
	}
	if v.Name != 0 {
		if out.Name, err = d.nameID(v.Name); err != nil {
			return infer.RegionVariableOrigin{}, err
		}
	}
	if v.Var != 0 {
		if out.Var, err = d.nameID(v.Var); err != nil {
			return infer.RegionVariableOrigin{}, err
		}
	}
	return out, nil
}

func (d *decoder) cause(c causeWire) (infer.ObligationCause, error) {
	span, err := d.span(c.Span)
	if err != nil {
		return infer.ObligationCause{}, err
	}
	out := infer.ObligationCause{
		Span:   span,
		Code:   infer.CauseCode(c.Code),
		Source: infer.MatchSource(c.Source),
	}
	if c.ArmSpan != (spanWire{}) {
		if out.ArmSpan, err = d.span(c.ArmSpan); err != nil {
			return infer.ObligationCause{}, err
		}
	}
	return out, nil
}

func (d *decoder) region(r regionWire) (regions.Region, error) {
	out := regions.Region{
		Kind:  regions.RegionKind(r.Kind),
		Scope: regions.ScopeID(r.Scope),
		Bound: regions.BoundRegion{
			Kind:  regions.BoundRegionKind(r.BoundKind),
			Index: r.BoundIndex,
			ID:    r.BoundID,
		},
		Depth: r.Depth,
		ID:    r.ID,
	}
	var err error
	if r.BoundName != 0 {
		if out.Bound.Name, err = d.nameID(r.BoundName); err != nil {
			return regions.Region{}, err
		}
	}
	if r.Name != 0 {
		if out.Name, err = d.nameID(r.Name); err != nil {
			return regions.Region{}, err
		}
	}
	return out, nil
}

func (d *decoder) span(s spanWire) (source.Span, error) {
	if s == (spanWire{}) {
		return source.Span{}, nil
	}
	if s.File == 0 || int(s.File) > len(d.files) {
		return source.Span{}, fmt.Errorf("%w: span references file %d", ErrMalformed, s.File)
	}
	return source.Span{File: d.files[s.File-1], Start: s.Start, End: s.End}, nil
}

func (d *decoder) name(idx uint32) (string, error) {
	if idx == 0 || int(idx) > len(d.wire.Names) {
		return "", fmt.Errorf("%w: name index %d", ErrMalformed, idx)
	}
	return d.wire.Names[idx-1], nil
}

func (d *decoder) nameID(idx uint32) (source.StringID, error) {
	if idx == 0 || int(idx) > len(d.names) {
		return 0, fmt.Errorf("%w: name index %d", ErrMalformed, idx)
	}
	return d.names[idx-1], nil
}

func (d *decoder) unitID(idx uint32) (types.UnitID, error) {
	if idx == 0 {
		return types.LocalUnit, nil
	}
	if int(idx) > len(d.units) {
		return types.LocalUnit, fmt.Errorf("%w: unit index %d", ErrMalformed, idx)
	}
	return d.units[idx-1], nil
}

func (d *decoder) node(idx uint32) (scopes.NodeID, error) {
	if idx == 0 {
		return scopes.NoNodeID, nil
	}
	if int(idx) > len(d.nodes) {
		return scopes.NoNodeID, fmt.Errorf("%w: node index %d", ErrMalformed, idx)
	}
	return d.nodes[idx-1], nil
}

// typeAt resolves a type table reference from inside the table itself;
// only backward references are legal.
func (d *decoder) typeAt(idx uint32, current int) (types.TypeID, error) {
	if idx == 0 || int(idx) > current {
		return types.NoTypeID, fmt.Errorf("%w: type %d references type %d", ErrMalformed, current+1, idx)
	}
	return d.types[idx-1], nil
}

func (d *decoder) typeRef(idx uint32) (types.TypeID, error) {
	if idx == 0 {
		return types.NoTypeID, nil
	}
	if int(idx) > len(d.types) {
		return types.NoTypeID, fmt.Errorf("%w: type index %d", ErrMalformed, idx)
	}
	return d.types[idx-1], nil
}
