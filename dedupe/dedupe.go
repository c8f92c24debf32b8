// Package dedupe suppresses near-duplicate conversation turns.
//
// Virtualized chat UIs sometimes render the same message twice (a
// streaming placeholder plus the final message, or an off-screen copy kept
// for scroll restoration). Exact comparison misses these because
// timestamps and citation markers differ, so turns are compared by SimHash
// fingerprints of their text content.
package dedupe

import (
	"hash/fnv"
	"math/bits"
	"strings"

	"github.com/SirTensor/chatbot-QnA-clipper-sub000/models"
)

// DefaultThreshold is the Hamming distance at or below which two turns
// are considered duplicates.
const DefaultThreshold = 3

// shingleSize is the token n-gram width used for fingerprinting. Shingles
// keep word order significant, so reordered sentences do not collide.
const shingleSize = 3

// Fingerprint computes a 64-bit SimHash of the text over word shingles.
func Fingerprint(text string) uint64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	tokens := words
	if len(words) >= shingleSize {
		tokens = make([]string, 0, len(words)-shingleSize+1)
		for i := 0; i <= len(words)-shingleSize; i++ {
			tokens = append(tokens, strings.Join(words[i:i+shingleSize], "_"))
		}
	}

	var vector [64]int
	for _, tok := range tokens {
		h := fnv.New64a()
		h.Write([]byte(tok))
		sum := h.Sum64()
		for i := 0; i < 64; i++ {
			if sum&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar reports whether two fingerprints are within the threshold.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}

// TurnText flattens one turn to the text used for fingerprinting: the
// user Markdown, or the concatenated text and code contents of assistant
// items. Image URLs and artifact stubs are excluded because they are
// identical across a duplicate pair anyway.
func TurnText(t models.Turn) string {
	if t.Role == models.RoleUser {
		return t.Text
	}
	var b strings.Builder
	for _, it := range t.Items {
		if it.Content != "" {
			b.WriteString(it.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// DropRepeats removes each turn that is a near-duplicate of the directly
// preceding turn with the same role. Only adjacent pairs are compared:
// a user legitimately repeating an earlier question stays.
func DropRepeats(turns []models.Turn, threshold int) []models.Turn {
	if len(turns) < 2 {
		return turns
	}

	out := make([]models.Turn, 0, len(turns))
	var prevFP uint64
	var prevRole models.Role
	var havePrev bool

	for _, t := range turns {
		text := TurnText(t)
		fp := Fingerprint(text)

		if havePrev && t.Role == prevRole && text != "" && Similar(fp, prevFP, threshold) {
			continue
		}
		out = append(out, t)
		prevFP, prevRole, havePrev = fp, t.Role, true
	}
	return out
}
