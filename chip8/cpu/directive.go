package cpu

import "fmt"

// DirectiveKind selects how the program counter moves after an instruction.
type DirectiveKind uint8

const (
	// DirectiveNext advances to the following instruction.
	DirectiveNext DirectiveKind = iota
	// DirectiveSkip skips the following instruction.
	DirectiveSkip
	// DirectiveJump moves to an absolute address.
	DirectiveJump
)

// Directive is what every instruction handler hands back to the cycle controller.
// Handlers never touch the program counter themselves; the controller applies the
// directive exactly once after the handler returns.
type Directive struct {
	Kind   DirectiveKind
	Target uint16
}

// Next advances pc by one instruction.
func Next() Directive { return Directive{Kind: DirectiveNext} }

// Skip advances pc by two instructions.
func Skip() Directive { return Directive{Kind: DirectiveSkip} }

// Jump sets pc to address.
func Jump(address uint16) Directive { return Directive{Kind: DirectiveJump, Target: address} }

// apply returns the program counter that results from applying d at pc.
func (d Directive) apply(pc uint16) uint16 {
	switch d.Kind {
	case DirectiveSkip:
		return pc + 2*instructionSize
	case DirectiveJump:
		return d.Target
	default:
		return pc + instructionSize
	}
}

func (d Directive) String() string {
	switch d.Kind {
	case DirectiveSkip:
		return "skip"
	case DirectiveJump:
		return fmt.Sprintf("jump 0x%03X", d.Target)
	default:
		return "next"
	}
}

// skipIf returns Skip when cond holds, Next otherwise.
func skipIf(cond bool) Directive {
	if cond {
		return Skip()
	}
	return Next()
}
