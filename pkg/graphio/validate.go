package graphio

import (
	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/seed"
)

// ValidateNodeSet checks every node of a layout input for a well-formed id
// and finite, non-negative dimensions. Duplicate ids are not rejected here;
// the layout engine skips them.
func ValidateNodeSet(ns NodeSet) error {
	for _, group := range [][]NodeJSON{ns.Nodes, ns.NewNodes} {
		for _, n := range group {
			if err := errors.ValidateNodeID(n.ID); err != nil {
				return err
			}
			if err := errors.ValidateDimensions(n.Width, n.Height); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidNode, err, "node %q", n.ID)
			}
		}
	}
	return nil
}

// ValidateSeedGraph checks every node of a seed graph for a well-formed id.
// Edges referring to unknown ids are allowed; the seeder skips them.
func ValidateSeedGraph(g seed.Graph) error {
	for _, n := range g.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return err
		}
	}
	return nil
}
