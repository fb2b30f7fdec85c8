package pubgrub

import (
	"fmt"
	"io"
)

// DerivationNode is one node of the proof tree that a NoSolutionError
// carries: the incompatibility at this node, and, if it was learned via the
// rule of resolution, the two incompatibilities it was derived from.
type DerivationNode struct {
	ic            *Incompatibility
	cause1, cause2 *DerivationNode
}

// Incompatibility returns the incompatibility this node proves.
func (n *DerivationNode) Incompatibility() *Incompatibility { return n.ic }

func buildDerivationTree(s *store, id int) *DerivationNode {
	ic := s.get(id)
	node := &DerivationNode{ic: ic}
	if ic.kind == KindDerivedFrom {
		node.cause1 = buildDerivationTree(s, ic.parent1)
		node.cause2 = buildDerivationTree(s, ic.parent2)
	}
	return node
}

// writeReport renders root as a numbered proof: every derived
// incompatibility gets one line citing the two facts it follows from, and a
// fact reused by more than one derivation step is cited by line number
// ("(3)") rather than being re-explained, so a diamond conflict doesn't
// produce a repeated wall of text for its shared ancestor.
func writeReport(w io.Writer, root *DerivationNode) error {
	if root.ic.kind != KindDerivedFrom {
		_, err := fmt.Fprintf(w, "%s.\n", root.ic.String())
		return err
	}

	lineOf := make(map[*Incompatibility]int)
	var walk func(node *DerivationNode) error
	n := 0
	walk = func(node *DerivationNode) error {
		if node.ic.kind != KindDerivedFrom {
			return nil
		}
		if _, done := lineOf[node.ic]; done {
			return nil
		}
		if err := walk(node.cause1); err != nil {
			return err
		}
		if err := walk(node.cause2); err != nil {
			return err
		}

		n++
		lineOf[node.ic] = n
		_, err := fmt.Fprintf(w, "%d. Because %s and %s, %s.\n",
			n, refText(node.cause1, lineOf), refText(node.cause2, lineOf), node.ic.String())
		return err
	}

	return walk(root)
}

func refText(node *DerivationNode, lineOf map[*Incompatibility]int) string {
	if node.ic.kind == KindDerivedFrom {
		if ln, ok := lineOf[node.ic]; ok {
			return fmt.Sprintf("(%d)", ln)
		}
	}
	return node.ic.String()
}
