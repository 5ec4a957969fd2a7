package snode

import (
	"fmt"
	"io"
	"strings"
)

// debug utilities

// Dump writes the subtree under sn to w, one node per line indented two
// spaces per level of depth, using hinted names and showing exponent links.
func (sn *SNode) Dump(w io.Writer) error {
	line := strings.Repeat("  ", sn.Depth) + sn.HintedTypeName()
	if sn.ExpNode != nil {
		line += fmt.Sprintf(" exp=%s", sn.ExpNode.TypeName())
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, ch := range sn.Children {
		if err := ch.Dump(w); err != nil {
			return err
		}
	}
	return nil
}

// TreeString renders Dump to a string, for logging.
func (sn *SNode) TreeString() string {
	var b strings.Builder
	// strings.Builder does not error
	_ = sn.Dump(&b)
	return b.String()
}
