package canon

import (
	"crypto/sha256"
	"sort"
)

var (
	magicSubject = Term{Kind: IRI, Value: "urn:canon:MAGIC_S"}
	magicObject  = Term{Kind: IRI, Value: "urn:canon:MAGIC_O"}
)

// fastPathHash implements the "magic placeholder" algorithm: every
// blank-node subject/object is replaced by a fixed placeholder, each triple
// line is hashed independently, the per-triple hashes are sorted and
// concatenated, and the concatenation is hashed again. This is NOT suitable
// for blockchain-grade collision resistance — it conflates distinct
// blank-node topologies whenever more than one blank node occupies the
// same structural position, which is why Complex and Pathological graphs
// always use the standard path (Moderate graphs use it only when the fast
// path times out).
func fastPathHash(triples []Triple) [32]byte {
	lines := make([]string, 0, len(triples))
	for _, tr := range triples {
		var sOverride, oOverride *Term
		if tr.Subject.isBlank() {
			sOverride = &magicSubject
		}
		if tr.Object.isBlank() {
			oOverride = &magicObject
		}
		line := tr.NTLine(sOverride, oOverride)
		sum := sha256.Sum256([]byte(line))
		lines = append(lines, string(sum[:]))
	}
	sort.Strings(lines)
	h := sha256.New()
	for _, l := range lines {
		h.Write([]byte(l))
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
