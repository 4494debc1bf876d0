package verdict

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

// edgeLess orders Edges deterministically for cmpopts.SortSlices so two
// EdgeSets built in different insertion order compare equal by content,
// not by Slice()'s unspecified map-iteration order.
func edgeLess(a, b Edge) bool {
	if a.A.Kind != b.A.Kind {
		return a.A.Kind < b.A.Kind
	}
	if a.A.ID != b.A.ID {
		return a.A.ID < b.A.ID
	}
	if a.B.Kind != b.B.Kind {
		return a.B.Kind < b.B.Kind
	}

	return a.B.ID < b.B.ID
}

func TestDeadEndMetabolites(t *testing.T) {
	assert.Equal(t, DeadEnd("A;B"), DeadEndMetabolites([]string{"A", "B"}))
}

func TestDuplicateOf(t *testing.T) {
	assert.Equal(t, DuplicateOK, DuplicateOf(nil))
	assert.Equal(t, Duplicate("R2;R3"), DuplicateOf([]string{"R2", "R3"}))
}

func TestEdgeSet_DedupesUndirected(t *testing.T) {
	s := NewEdgeSet()
	s.AddReactionEdge("R1", "R2")
	s.AddReactionEdge("R2", "R1")
	assert.Len(t, s.Slice(), 1)
}

func TestEdgeSet_Union(t *testing.T) {
	a := NewEdgeSet()
	a.AddReactionEdge("R1", "R2")
	b := NewEdgeSet()
	b.AddMetaboliteEdge("R3", "M1")
	a.Union(b)
	assert.Len(t, a.Slice(), 2)
}

func TestNode_KindDistinguishesSameID(t *testing.T) {
	s := NewEdgeSet()
	s.AddReactionEdge("X", "Y")
	s.AddMetaboliteEdge("X", "Y")
	assert.Len(t, s.Slice(), 2)
}

// Two EdgeSets built by adding the same edges in opposite order must
// compare equal content-wise even though Slice() makes no iteration-order
// guarantee; go-cmp with a sort transform gives a readable diff instead
// of reflect.DeepEqual's order-sensitive slice comparison.
func TestEdgeSet_Slice_OrderIndependentEquality(t *testing.T) {
	a := NewEdgeSet()
	a.AddReactionEdge("R1", "R2")
	a.AddMetaboliteEdge("R1", "A")
	a.AddMetaboliteEdge("R2", "B")

	b := NewEdgeSet()
	b.AddMetaboliteEdge("R2", "B")
	b.AddMetaboliteEdge("R1", "A")
	b.AddReactionEdge("R2", "R1")

	opt := cmpopts.SortSlices(edgeLess)
	if diff := cmp.Diff(a.Slice(), b.Slice(), opt); diff != "" {
		t.Errorf("edge sets differ (-a +b):\n%s", diff)
	}
}
