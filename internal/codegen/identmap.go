package codegen

import "github.com/oxhq/fabc/internal/norma"

// wellKnown remaps the handful of identifiers the grammar treats as
// reserved surface words (math constants) rather than ordinary bindings, to
// each target's own spelling. Self-reference, boolean constants, and the
// null marker are handled by Target.SelfName/BoolLiteral/NullLiteral
// instead, since those are grammar-level node kinds (SelfRef, Literal), not
// plain identifiers.
var wellKnown = map[string]map[string]string{
	"pi_constant": {
		norma.TargetTS:  "Math.PI",
		norma.TargetPy:  "math.pi",
		norma.TargetRs:  "std::f64::consts::PI",
		norma.TargetZig: "std.math.pi",
		norma.TargetGo:  "math.Pi",
		norma.TargetCpp: "M_PI",
	},
}

func remapIdentifier(target, name string) string {
	if table, ok := wellKnown[name]; ok {
		if mapped, ok := table[target]; ok {
			return mapped
		}
	}
	return name
}
