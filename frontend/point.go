package frontend

import (
	"go/token"
	"go/types"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Kind is the kind of a decision point.
type Kind int

// Decision point kinds.
const (
	// If is a conditional branch on a boolean value.
	If Kind = iota
	// Switch is a chain of comparisons of a value against constants.
	Switch
	// NilCheck is a comparison of a reference against nil.
	NilCheck
	// Deref is a load through a reference, which panics on nil.
	Deref
	// Index is an indexed access to a slice, which panics out of bounds.
	Index
	// MakeSlice is a slice allocation, which panics on a negative length.
	MakeSlice
)

var kindNames = [...]string{
	If:        "if",
	Switch:    "switch",
	NilCheck:  "nil",
	Deref:     "deref",
	Index:     "index",
	MakeSlice: "make",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// ParseKind returns the kind named name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown decision point kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Point is a decision point of a function.
type Point interface {
	// Instr returns the instruction at the decision point.
	Instr() ssa.Instruction
	Kind() Kind
}

// IfPoint is a branch by *ssa.If on a primitive condition.
type IfPoint struct {
	instr *ssa.If
}

func (p *IfPoint) Instr() ssa.Instruction { return p.instr }
func (p *IfPoint) Kind() Kind             { return If }

// Cond returns the branch condition.
func (p *IfPoint) Cond() ssa.Value { return p.instr.Cond }

// SwitchPoint is a switch statement recovered from an if/else chain.
type SwitchPoint struct {
	sw ssautil.Switch
}

func (p *SwitchPoint) Instr() ssa.Instruction {
	b := p.sw.Start
	return b.Instrs[len(b.Instrs)-1]
}

func (p *SwitchPoint) Kind() Kind { return Switch }

// RefPoint is a decision point on a reference: a nil check or a load through it.
type RefPoint struct {
	instr ssa.Instruction
	kind  Kind
	x     ssa.Value
}

func (p *RefPoint) Instr() ssa.Instruction { return p.instr }
func (p *RefPoint) Kind() Kind             { return p.kind }

// X returns the reference.
func (p *RefPoint) X() ssa.Value { return p.x }

// IndexPoint is an indexed access to a slice.
type IndexPoint struct {
	instr *ssa.IndexAddr
}

func (p *IndexPoint) Instr() ssa.Instruction { return p.instr }
func (p *IndexPoint) Kind() Kind             { return Index }

// MakeSlicePoint is a slice allocation.
type MakeSlicePoint struct {
	instr *ssa.MakeSlice
}

func (p *MakeSlicePoint) Instr() ssa.Instruction { return p.instr }
func (p *MakeSlicePoint) Kind() Kind             { return MakeSlice }

// Points returns the decision points of fn in block order. The comparisons
// of a switch are reported once, as a SwitchPoint.
func Points(fn *ssa.Function) []Point {
	switches := make(map[*ssa.BasicBlock]*SwitchPoint)
	inSwitch := make(map[*ssa.BasicBlock]bool)
	for _, sw := range ssautil.Switches(fn) {
		if len(sw.ConstCases) == 0 || !isIntegral(sw.X.Type()) {
			continue
		}
		switches[sw.Start] = &SwitchPoint{sw: sw}
		for _, c := range sw.ConstCases {
			inSwitch[c.Block] = true
		}
	}

	var points []Point
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			switch instr := instr.(type) {
			case *ssa.If:
				if sw, ok := switches[b]; ok {
					points = append(points, sw)
					continue
				}
				if inSwitch[b] {
					continue
				}
				if x, ok := nilCheck(instr.Cond); ok {
					points = append(points, &RefPoint{instr: instr, kind: NilCheck, x: x})
					continue
				}
				points = append(points, &IfPoint{instr: instr})
			case *ssa.UnOp:
				if instr.Op == token.MUL && isLoadable(instr.X) {
					points = append(points, &RefPoint{instr: instr, kind: Deref, x: instr.X})
				}
			case *ssa.FieldAddr:
				if isLoadable(instr.X) {
					points = append(points, &RefPoint{instr: instr, kind: Deref, x: instr.X})
				}
			case *ssa.IndexAddr:
				if _, ok := instr.X.Type().Underlying().(*types.Slice); ok {
					points = append(points, &IndexPoint{instr: instr})
				}
			case *ssa.MakeSlice:
				points = append(points, &MakeSlicePoint{instr: instr})
			}
		}
	}
	return points
}

// nilCheck returns x if cond compares x against nil.
func nilCheck(cond ssa.Value) (ssa.Value, bool) {
	b, ok := cond.(*ssa.BinOp)
	if !ok || (b.Op != token.EQL && b.Op != token.NEQ) {
		return nil, false
	}
	if c, ok := b.Y.(*ssa.Const); ok && c.IsNil() && isReference(b.X.Type()) {
		return b.X, true
	}
	if c, ok := b.X.(*ssa.Const); ok && c.IsNil() && isReference(b.Y.Type()) {
		return b.Y, true
	}
	return nil, false
}

// isLoadable returns true if loading through x may need resolving a
// reference: x is a parameter or a value loaded from one.
func isLoadable(x ssa.Value) bool {
	switch x := x.(type) {
	case *ssa.Parameter:
		return isReference(x.Type())
	case *ssa.UnOp:
		return x.Op == token.MUL && isReference(x.Type()) && isLoadable(x.X)
	}
	return false
}

func isIntegral(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsInteger != 0
}
