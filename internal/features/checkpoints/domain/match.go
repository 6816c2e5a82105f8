package domain

import "strings"

// MatchTier is the confidence tier a location string matched at.
type MatchTier string

const (
	// MatchExact means the input equals a canonical checkpoint name.
	MatchExact MatchTier = "EXACT"
	// MatchAlias means the input equals one of a checkpoint's alternative names.
	MatchAlias MatchTier = "ALIAS"
	// MatchPartial means the input and a checkpoint name/alias contain each other.
	MatchPartial MatchTier = "PARTIAL"
	// MatchNone means no checkpoint matched within the bounded policy.
	MatchNone MatchTier = "NONE"
)

// MatchResult is the outcome of resolving a raw location string.
type MatchResult struct {
	Checkpoint *Checkpoint
	Tier       MatchTier
	// Matched is the normalized substring that produced the match, used by
	// the partial tie-break and exposed for auditability.
	Matched string
}

// Normalize canonicalizes free-text location input: upper-case, trimmed,
// internal whitespace collapsed, punctuation reduced to single spaces so
// "Mtito-Andei" and "MTITO ANDEI" compare equal.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Match resolves a raw location string against an ordered checkpoint list.
// Resolution tiers, first match wins:
//  1. exact canonical name
//  2. exact alternative name
//  3. partial containment either way, tie-broken by IsMajor, then longest
//     matched substring, then lowest route order
//
// The checkpoint list must already be filtered to active checkpoints and
// sorted by Order ascending; Match itself is pure and side-effect free.
func Match(raw string, ordered []Checkpoint) MatchResult {
	q := Normalize(raw)
	if q == "" {
		return MatchResult{Tier: MatchNone}
	}

	for i := range ordered {
		if Normalize(ordered[i].Name) == q {
			return MatchResult{Checkpoint: &ordered[i], Tier: MatchExact, Matched: q}
		}
	}

	for i := range ordered {
		for _, alt := range ordered[i].AlternativeNames {
			if Normalize(alt) == q {
				return MatchResult{Checkpoint: &ordered[i], Tier: MatchAlias, Matched: q}
			}
		}
	}

	var best *Checkpoint
	var bestMatched string
	for i := range ordered {
		cp := &ordered[i]
		for _, name := range append([]string{cp.Name}, cp.AlternativeNames...) {
			n := Normalize(name)
			if n == "" {
				continue
			}
			var matched string
			switch {
			case strings.Contains(q, n):
				matched = n
			case strings.Contains(n, q):
				matched = q
			default:
				continue
			}
			if preferPartial(cp, matched, best, bestMatched) {
				best = cp
				bestMatched = matched
			}
		}
	}
	if best != nil {
		return MatchResult{Checkpoint: best, Tier: MatchPartial, Matched: bestMatched}
	}

	return MatchResult{Tier: MatchNone}
}

// preferPartial applies the partial-match tie-break: major checkpoints first,
// then the longer matched substring, then the lower route order.
func preferPartial(cand *Checkpoint, candMatched string, best *Checkpoint, bestMatched string) bool {
	if best == nil {
		return true
	}
	if cand.IsMajor != best.IsMajor {
		return cand.IsMajor
	}
	if len(candMatched) != len(bestMatched) {
		return len(candMatched) > len(bestMatched)
	}
	return cand.Order < best.Order
}
