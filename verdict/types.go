// Package verdict defines the closed verdict alphabets each test emits
// (§3, §6 "Required verdict alphabets") as tagged string types, plus the
// heterogeneous Node/Edge sum types pathway synthesis consumes (§9:
// "Heterogeneous edges -> node-kind sum type").
//
// Canonicalization to the literal strings tested in §6 happens only at
// the serialization boundary (the string conversions in macaw.WriteCSV);
// internal code compares against the typed constants, never raw strings.
package verdict

import "strings"

// DeadEnd is the dead_end_test verdict alphabet (§4.2, §6).
type DeadEnd string

const (
	DeadEndOK       DeadEnd = "ok"
	DeadEndForward  DeadEnd = "only when going forwards"
	DeadEndBackward DeadEnd = "only when going backwards"
)

// DeadEndMetabolites builds the "<metID>[;<metID>]*" form (§4.2 step 2).
func DeadEndMetabolites(metIDs []string) DeadEnd {
	return DeadEnd(strings.Join(metIDs, ";"))
}

// Dilution is the dilution_test verdict alphabet (§4.3, §6).
type Dilution string

const (
	DilutionOK          Dilution = "ok"
	DilutionAlwaysBlock Dilution = "always blocked"
	DilutionBlocked     Dilution = "blocked by dilution"
	DilutionUnblocked   Dilution = "unblocked by dilution"
)

// Diphosphate is the diphosphate_test verdict alphabet (§4.4, §6).
type Diphosphate string

const (
	DiphosphateOK       Diphosphate = "ok"
	DiphosphateIrrev    Diphosphate = "should be irreversible"
	DiphosphateFlipIrre Diphosphate = "should be flipped and made irreversible"
)

// Duplicate is the verdict alphabet shared by all four duplicate_test_*
// sub-columns (§4.5, §6): "ok" or a semicolon-joined list of sibling IDs.
type Duplicate string

const DuplicateOK Duplicate = "ok"

// DuplicateOf builds the "<rxnID>[;<rxnID>]*" form.
func DuplicateOf(rxnIDs []string) Duplicate {
	if len(rxnIDs) == 0 {
		return DuplicateOK
	}

	return Duplicate(strings.Join(rxnIDs, ";"))
}

// Loop is the loop_test verdict alphabet (§4.6, §6).
type Loop string

const (
	LoopOK     Loop = "ok"
	LoopInLoop Loop = "in loop"
)

// NodeKind tags a pathway-synthesis graph node as a reaction or a
// metabolite (§9's node-kind sum type).
type NodeKind int

const (
	NodeReaction NodeKind = iota
	NodeMetabolite
)

// Node is one endpoint of an Edge: an ID tagged with its kind.
type Node struct {
	Kind NodeKind
	ID   string
}

// Edge is an unordered pair of Nodes (§3's "edge list"): bipartite
// (metabolite<->reaction) for dead-end/dilution, monopartite
// (reaction<->reaction) for duplicate/loop.
type Edge struct {
	A, B Node
}

// Canon returns a copy of e with A and B ordered so Edge{A,B}==Edge{B,A}
// canonicalize identically, letting EdgeSet dedupe by value.
func (e Edge) Canon() Edge {
	if less(e.B, e.A) {
		return Edge{A: e.B, B: e.A}
	}

	return e
}

func less(x, y Node) bool {
	if x.Kind != y.Kind {
		return x.Kind < y.Kind
	}

	return x.ID < y.ID
}

// EdgeSet is an unordered, deduplicated collection of Edges (§3).
type EdgeSet map[Edge]struct{}

// NewEdgeSet returns an empty EdgeSet.
func NewEdgeSet() EdgeSet { return make(EdgeSet) }

// Add inserts e (canonicalized) into the set.
func (s EdgeSet) Add(e Edge) { s[e.Canon()] = struct{}{} }

// AddReactionEdge adds a monopartite reaction<->reaction edge.
func (s EdgeSet) AddReactionEdge(a, b string) {
	s.Add(Edge{A: Node{Kind: NodeReaction, ID: a}, B: Node{Kind: NodeReaction, ID: b}})
}

// AddMetaboliteEdge adds a bipartite reaction<->metabolite edge.
func (s EdgeSet) AddMetaboliteEdge(reactionID, metaboliteID string) {
	s.Add(Edge{A: Node{Kind: NodeReaction, ID: reactionID}, B: Node{Kind: NodeMetabolite, ID: metaboliteID}})
}

// Union merges other into s.
func (s EdgeSet) Union(other EdgeSet) {
	for e := range other {
		s[e] = struct{}{}
	}
}

// Slice returns the set's edges as a slice, in no particular order.
func (s EdgeSet) Slice() []Edge {
	out := make([]Edge, 0, len(s))
	for e := range s {
		out = append(out, e)
	}

	return out
}
