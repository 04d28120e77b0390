package norma

// sharedRadixForms is generated by `fabc norma-gen` from the `stem:` fields
// of canonical.yaml. None of the fifteen collection verbs currently
// registered has a `stem:` override, so the table is empty: for each of
// them the greedy longest-suffix-first parse in morphology.Analyze either
// yields the intended stem or finds no suffix at all (longitudo, unio,
// dimensio). A future ambiguous verb (the AnalyzeWithStem doc comment's
// "decapita" is the canonical example: a greedy parse could misbin it as
// decap+ita instead of decapit+a) gets a row here from its canonical.yaml
// `stem:` field; the morphology package does not read this table.
var sharedRadixForms = RadixForms{}
