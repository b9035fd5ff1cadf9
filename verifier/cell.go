package verifier

import (
	"fmt"

	"github.com/soda-maze/maze/pairing"
)

// CellAddr identifies one of the host-owned scratch accounts the stepwise
// verifier reads and writes (§3 "Verifier buffer cells" — b1..b7). The host
// assigns the concrete address scheme (account pubkeys on a ledger, row keys
// in a table, whatever); this package only ever compares addresses for
// equality against what a transition expects.
type CellAddr string

// CellKind tags which of the eight payload shapes a Cell currently holds,
// the "self-describing tagged payload" §3 and §6 both call for. A state
// that reads a cell whose Kind doesn't match what it declared is a fatal
// error (§3 invariant, §4.5.3).
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellFq12
	CellG1Jacobian
	CellG1Affine
	CellG2Affine
	CellG2Homogeneous
	CellFq2
	CellFq
	CellFieldVector
)

// Cell is the sum-type payload stored at one address. Only the field named
// by Kind is meaningful; the rest are zero value.
type Cell struct {
	Kind CellKind

	Fq12        pairing.Fq12
	G1Jacobian  pairing.G1Jac
	G1Affine    pairing.G1Affine
	G2Affine    pairing.G2Affine
	G2Homogen   pairing.G2Jac
	Fq2         pairing.Fq2
	Fq          pairing.Fq
	FieldVector []pairing.Fr
}

// CellStore is implemented by the host. get/put/erase, not a borrowed
// mutable context — the Go shape of §9's "interior mutability" re-design
// note: the FSM never holds a reference into host storage across a
// suspension point, it round-trips values through these three calls.
type CellStore interface {
	Get(addr CellAddr) (Cell, error)
	Put(addr CellAddr, c Cell) error
	Erase(addr CellAddr) error
}

// FatalError reports an invariant violation that aborts the entire
// verification attempt rather than producing a wrong answer (§4.5.3: "Cell
// address mismatch, or a cell's stored variant tag doesn't match the
// state's declared type -> fatal error"). The surrounding layer is expected
// to reset and require re-submission.
type FatalError struct {
	Addr   CellAddr
	Reason string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("verifier: fatal at cell %q: %s", e.Addr, e.Reason)
}

// getKind fetches addr and asserts its payload is of the expected kind,
// returning a *FatalError otherwise.
func getKind(store CellStore, addr CellAddr, kind CellKind) (Cell, error) {
	c, err := store.Get(addr)
	if err != nil {
		return Cell{}, err
	}
	if c.Kind != kind {
		return Cell{}, &FatalError{Addr: addr, Reason: "payload kind mismatch"}
	}
	return c, nil
}

// CellAddrs bundles the seven rotating-role scratch addresses (b1..b7) for
// one in-flight verification instance. Which logical quantity each bX holds
// depends on the current Phase, per the table in doc.go.
type CellAddrs struct {
	B1, B2, B3, B4, B5, B6, B7 CellAddr
}
