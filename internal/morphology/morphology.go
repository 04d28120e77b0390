// Package morphology decomposes a Latin-derived method name into a stem and
// an inflectional suffix, yielding the semantic flags that drive parser
// disambiguation and codegen method dispatch.
//
// Analyze is pure and terminating: same input always yields the same
// output, and it never mutates package-level state (testable property 2).
package morphology

// Form is one of the five verb forms the grammar recognizes.
type Form string

const (
	Imperativus         Form = "imperativus"          // mutating imperative: adde, addita no -- see perfectum
	Perfectum           Form = "perfectum"             // participle, returns-new copy
	FuturumIndicativum  Form = "futurum_indicativum"   // async, non-mutating
	FuturumActivum      Form = "futurum_activum"       // async, mutating
	ParticipiumPraesens Form = "participium_praesens"  // streaming present participle
)

// Flags is the 4-tuple derived from a suffix.
type Flags struct {
	Mutates    bool
	Async      bool
	ReturnsNew bool
	Allocates  bool
}

// ParsedMethod is the result of a successful morphological analysis.
type ParsedMethod struct {
	Stem  string
	Form  Form
	Flags Flags
}

// suffixRule pairs a suffix with the form and flags it denotes. Rules are
// tried longest-suffix-first within each length bucket, and bucket lengths
// are tried 5,4,3,2,1, matching a greedy-longest-first contract.
type suffixRule struct {
	suffix string
	form   Form
	flags  Flags
}

// rulesByLength buckets suffix rules by character length, longest bucket
// first. Declared in descending length order so analyze can walk it
// directly.
var rulesByLength = [][]suffixRule{
	{ // 5-char suffixes
		{"turus", ParticipiumPraesens, Flags{Mutates: false, Async: true, ReturnsNew: false, Allocates: false}},
	},
	{ // 4-char suffixes
		{"avit", FuturumIndicativum, Flags{Async: true}},
		{"ivit", FuturumIndicativum, Flags{Async: true}},
		{"iens", ParticipiumPraesens, Flags{Allocates: true}},
		{"uens", ParticipiumPraesens, Flags{Allocates: true}},
	},
	{ // 3-char suffixes
		{"ata", Perfectum, Flags{ReturnsNew: true, Allocates: true}},
		{"ita", Perfectum, Flags{ReturnsNew: true, Allocates: true}},
		{"uta", Perfectum, Flags{ReturnsNew: true, Allocates: true}},
		{"bit", FuturumIndicativum, Flags{Async: true}},
		{"iet", FuturumActivum, Flags{Async: true, Mutates: true}},
		{"ens", ParticipiumPraesens, Flags{Allocates: true}},
	},
	{ // 2-char suffixes
		{"et", FuturumIndicativum, Flags{Async: true}},
		{"ns", ParticipiumPraesens, Flags{Allocates: true}},
	},
	{ // 1-char suffixes
		{"e", Imperativus, Flags{Mutates: true}},
		{"a", Imperativus, Flags{Mutates: true}},
	},
}

// Analyze attempts, longest suffix first, to split word into a stem plus a
// recognized inflectional suffix. It returns (result, ok); ok is false when
// no suffix in the table matches, in which case the caller should treat the
// word as an opaque identifier rather than a morphologically meaningful
// method name.
func Analyze(word string) (ParsedMethod, bool) {
	for _, bucket := range rulesByLength {
		for _, rule := range bucket {
			if len(word) <= len(rule.suffix) {
				continue
			}
			if word[len(word)-len(rule.suffix):] == rule.suffix {
				return ParsedMethod{
					Stem:  word[:len(word)-len(rule.suffix)],
					Form:  rule.form,
					Flags: rule.flags,
				}, true
			}
		}
	}
	return ParsedMethod{}, false
}

// AnalyzeWithStem validates word against a canonical stem declared by the
// norma registry's radixForms table (consulted when a greedy parse would
// misbin an ambiguous verb, e.g. splitting "decapita" into "decap"+"-ita"
// instead of the intended "decapit"+"-a"). Only the suffix after stem is
// checked against the suffix table; the stem itself is trusted.
func AnalyzeWithStem(word, stem string) (ParsedMethod, bool) {
	if len(word) <= len(stem) || word[:len(stem)] != stem {
		return ParsedMethod{}, false
	}
	suffix := word[len(stem):]
	for _, bucket := range rulesByLength {
		for _, rule := range bucket {
			if rule.suffix == suffix {
				return ParsedMethod{Stem: stem, Form: rule.form, Flags: rule.flags}, true
			}
		}
	}
	return ParsedMethod{}, false
}
