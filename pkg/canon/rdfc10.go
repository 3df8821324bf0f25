package canon

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

var (
	selfMarker  = Term{Kind: IRI, Value: "urn:canon:SELF"}
	otherMarker = Term{Kind: IRI, Value: "urn:canon:OTHER"}
)

// firstDegreeHash implements the RDFC-1.0 first-degree step: hash the multiset of
// triples mentioning label, with label itself replaced by a fixed
// placeholder and every other blank node replaced by a second, identical
// placeholder (ties among same-shaped neighborhoods are resolved later by
// n-degree hashing, not here).
func firstDegreeHash(label string, triples []Triple) string {
	mentions := triplesMentioning(triples, label)
	lines := make([]string, 0, len(mentions))
	for _, tr := range mentions {
		var sOverride, oOverride *Term
		if tr.Subject.isBlank() {
			if tr.Subject.Value == label {
				sOverride = &selfMarker
			} else {
				sOverride = &otherMarker
			}
		}
		if tr.Object.isBlank() {
			if tr.Object.Value == label {
				oOverride = &selfMarker
			} else {
				oOverride = &otherMarker
			}
		}
		lines = append(lines, tr.NTLine(sOverride, oOverride))
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return fmt.Sprintf("%x", sum)
}

// standardPathHash implements the full RDFC-1.0 algorithm: first-degree
// hashing, n-degree disambiguation of ties bounded by permutationBudget,
// canonical label assignment, re-serialization, sort, final SHA-256.
func standardPathHash(triples []Triple, permutationBudget int) ([32]byte, error) {
	labels := blankNodes(triples)
	first := make(map[string]string, len(labels))
	for _, l := range labels {
		first[l] = firstDegreeHash(l, triples)
	}

	groups := make(map[string][]string)
	for _, l := range labels {
		groups[first[l]] = append(groups[first[l]], l)
	}
	var groupHashes []string
	for h := range groups {
		groupHashes = append(groupHashes, h)
	}
	sort.Strings(groupHashes)

	canonicalLabel := make(map[string]string, len(labels))
	idx := 0
	budget := permutationBudget
	for _, h := range groupHashes {
		members := groups[h]
		sort.Strings(members)
		if len(members) == 1 {
			canonicalLabel[members[0]] = fmt.Sprintf("c14n%d", idx)
			idx++
			continue
		}
		order, err := disambiguate(members, triples, first, &budget)
		if err != nil {
			return [32]byte{}, err
		}
		for _, m := range order {
			canonicalLabel[m] = fmt.Sprintf("c14n%d", idx)
			idx++
		}
	}

	lines := make([]string, 0, len(triples))
	for _, tr := range triples {
		var sOverride, oOverride *Term
		if tr.Subject.isBlank() {
			t := Term{Kind: BlankNode, Value: canonicalLabel[tr.Subject.Value]}
			sOverride = &t
		}
		if tr.Object.isBlank() {
			t := Term{Kind: BlankNode, Value: canonicalLabel[tr.Object.Value]}
			oOverride = &t
		}
		lines = append(lines, tr.NTLine(sOverride, oOverride))
	}
	sort.Strings(lines)
	return sha256.Sum256([]byte(strings.Join(lines, "\n"))), nil
}

// disambiguate implements the RDFC-1.0 n-degree step: for a group of blank nodes
// tied on first-degree hash, try every permutation of the tied siblings,
// compute a path hash for each assignment order, and keep the
// lexicographically smallest. The permutation count is bounded by budget;
// exceeding it returns CanonicalizationBudgetExceeded rather than
// continuing to search.
func disambiguate(members []string, triples []Triple, first map[string]string, budget *int) ([]string, error) {
	originalBudget := *budget
	best := ""
	var bestOrder []string

	perm := make([]string, len(members))
	used := make([]bool, len(members))

	var recurse func(depth int) error
	recurse = func(depth int) error {
		if depth == len(members) {
			*budget--
			if *budget < 0 {
				return &CanonicalizationBudgetExceeded{Budget: originalBudget}
			}
			sig := pathSignature(perm, triples, first)
			if best == "" || sig < best {
				best = sig
				bestOrder = append([]string(nil), perm...)
			}
			return nil
		}
		for i, m := range members {
			if used[i] {
				continue
			}
			used[i] = true
			perm[depth] = m
			if err := recurse(depth + 1); err != nil {
				used[i] = false
				return err
			}
			used[i] = false
		}
		return nil
	}

	if err := recurse(0); err != nil {
		return nil, err
	}
	return bestOrder, nil
}

// pathSignature hashes an assignment order's per-member first-degree
// hashes together with the inter-member edge structure, giving
// disambiguate a comparable value per permutation.
func pathSignature(order []string, triples []Triple, first map[string]string) string {
	var b strings.Builder
	position := make(map[string]int, len(order))
	for i, m := range order {
		position[m] = i
		b.WriteString(first[m])
		b.WriteByte('|')
	}
	for _, m := range order {
		for _, tr := range triplesMentioning(triples, m) {
			if tr.Subject.isBlank() && tr.Object.isBlank() &&
				tr.Subject.Value != tr.Object.Value {
				if sp, ok := position[tr.Subject.Value]; ok {
					if op, ok2 := position[tr.Object.Value]; ok2 {
						fmt.Fprintf(&b, "%d-%s-%d|", sp, tr.Predicate.Value, op)
					}
				}
			}
		}
	}
	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", sum)
}
