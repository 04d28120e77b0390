// Package norma holds the per-target standard-library translation registry:
// a static dictionary mapping (collection-kind, Latin-method-name) to a
// target-specific template or generator, plus the radixForms table of
// declared canonical stems for ambiguous verbs (the morphology package does
// not read it). The six per-target tables in this package are checked-in
// generated output; cmd/fabc's norma-gen subcommand regenerates them from
// canonical.yaml. Neither the generator nor go build invoke one another —
// the generator is re-run by hand after canonical.yaml changes.
package norma

import "strings"

// Key identifies one registry entry: a collection kind (list/map/set) and
// the Latin method name as written at the call site.
type Key struct {
	Collection string
	Method     string
}

// Translation is either a symbolic §/§N template or a closure taking the
// already-emitted receiver and argument strings. Exactly one of Template or
// Func below is non-empty/non-nil for a given Entry.
type Translation interface {
	isTranslation()
}

// Template renders with §0 standing for the receiver and §1.. for
// positional arguments; a bare § is shorthand for §0.
type Template string

func (Template) isTranslation() {}

// Render substitutes receiver and args into the template. Positional
// placeholders are filled highest index first, then §0, then bare §; the
// allocator placeholder §A is left in place for the dispatcher to fill.
func (t Template) Render(receiver string, args []string) string {
	out := string(t)
	for i := len(args); i >= 1; i-- {
		out = strings.ReplaceAll(out, placeholderFor(i), args[i-1])
	}
	out = strings.ReplaceAll(out, "§0", receiver)
	parts := strings.Split(out, "§A")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "§", receiver)
	}
	return strings.Join(parts, "§A")
}

func placeholderFor(n int) string {
	digits := "0123456789"
	if n < 10 {
		return "§" + string(digits[n])
	}
	return "§" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

// FuncTranslation is a generator closure for translations template strings
// can't express cleanly (e.g. argument reordering, receiver-dependent
// wrapping).
type FuncTranslation func(receiver string, args []string) string

func (FuncTranslation) isTranslation() {}

// Entry is one registered translation.
type Entry struct {
	Translation     Translation
	RequiredHeaders []string
	Stem            string // declared canonical stem, set only for ambiguous verbs
}

// Table is one target's (collection, method) -> Entry dictionary.
type Table map[Key]Entry

// Lookup finds the entry for collection/method in t.
func (t Table) Lookup(collection, method string) (Entry, bool) {
	e, ok := t[Key{Collection: collection, Method: method}]
	return e, ok
}

// RadixForm records the declared canonical stem and the inflection forms
// the registry permits for an ambiguous verb.
type RadixForm struct {
	Stem  string
	Forms []string // morphology.Form values, as strings, to avoid an import cycle
}

// RadixForms maps (collection, method) -> RadixForm. Nothing in the
// morphology package reads it; morphology.AnalyzeWithStem takes the stem
// as an argument.
type RadixForms map[Key]RadixForm

// Registry bundles every target's table plus the shared radixForms table.
type Registry struct {
	Tables     map[string]Table
	RadixForms RadixForms
}

// Targets supported by the compiler.
const (
	TargetTS  = "ts"
	TargetPy  = "py"
	TargetRs  = "rs"
	TargetZig = "zig"
	TargetGo  = "go"
	TargetCpp = "cpp"
)

var AllTargets = []string{TargetTS, TargetPy, TargetRs, TargetZig, TargetGo, TargetCpp}

// Default is the registry built from the checked-in generated tables. It is
// shared read-only data: initialized once at package load and never
// mutated.
var Default = &Registry{
	Tables: map[string]Table{
		TargetTS:  tsTable,
		TargetPy:  pyTable,
		TargetRs:  rsTable,
		TargetZig: zigTable,
		TargetGo:  goTable,
		TargetCpp: cppTable,
	},
	RadixForms: sharedRadixForms,
}

// Lookup finds the entry for (target, collection, method), trying the
// `list` table first, then `map` and `set`, when collection is unresolved.
func (r *Registry) Lookup(target, collection, method string) (Entry, bool) {
	table, ok := r.Tables[target]
	if !ok {
		return Entry{}, false
	}
	if collection == "" {
		for _, c := range []string{"list", "map", "set"} {
			if e, ok := table.Lookup(c, method); ok {
				return e, true
			}
		}
		return Entry{}, false
	}
	return table.Lookup(collection, method)
}
