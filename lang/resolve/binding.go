package resolve

import "github.com/reso-lang/reso-sub001/lang/types"

// Binding ties a declared variable's source name to its stack slot and
// static type. The slot name is stable once allocated — shadowing a name in
// a nested scope allocates a fresh Binding with a disambiguated slot name,
// it never mutates the outer Binding, so earlier references keep pointing
// at the outer slot even after the inner declaration exists.
type Binding struct {
	Name string // source-level name, e.g. "x"
	Slot string // emitted identifier, e.g. "x" or "x2"
	Type types.Type
}
