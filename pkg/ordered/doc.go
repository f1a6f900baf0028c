// Package ordered computes and applies edit scripts for ordered sequences.
//
// Two interchangeable algorithms are provided. Levenshtein fills the full
// cost table and backtracks through it; Hirschberg bisects the target and
// only ever keeps single cost rows, trading a constant factor of time for
// memory proportional to one input. Both produce scripts that, applied to
// the existing sequence, rebuild the updated one; the literal scripts may
// differ when several minimal alignments exist.
//
// A script is a list of Change values applied strictly in order. Each
// position refers to the sequence as it looks after every earlier change in
// the list has been applied, so no transformation step is needed:
//
//	changes := ordered.Diff([]rune("testing"), []rune("tested"))
//	out, err := ordered.ApplySlice([]rune("testing"), changes)
//	// string(out) == "tested"
//
// Apply works on any Sequence, which includes rope.Rope.
package ordered
