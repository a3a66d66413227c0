package match

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Parenthesized or bracketed featuring credits: "(feat. X)", "[ft X]",
	// "(featuring X)", "(with X)".
	parenFeatRegex = regexp.MustCompile(`(?i)\s*[(\[]\s*(?:feat\.?|ft\.?|featuring|with)\s+[^)\]]*[)\]]`)

	// Trailing featuring credits without brackets: "Song feat. X".
	trailingFeatRegex = regexp.MustCompile(`(?i)\s+(?:feat\.?|ft\.?|featuring|with)\s+.*$`)

	// Any leftover parenthetical or bracketed content.
	parentheticalRegex = regexp.MustCompile(`\s*\([^)]*\)|\s*\[[^\]]*\]`)

	// Bracketed segments carrying version indicators or a 4-digit year,
	// e.g. "(2011 Remaster)", "[Deluxe Edition]", "(1999)".
	versionTagRegex = regexp.MustCompile(`(?i)\s*[(\[][^)\]]*(?:remaster|remix|version|edit|deluxe|anniversary|edition|super)[^)\]]*[)\]]`)
	bracketYearRegex = regexp.MustCompile(`\s*[(\[]\s*\d{4}\s*[)\]]`)

	// NFD-decompose then drop combining marks, folding "Beyoncé" to
	// "Beyonce" so diacritics never break equality.
	diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// tributeKeywords mark artist names that suggest a cover or tribute act
// rather than the original performer. Matched against cleaned text.
var tributeKeywords = []string{
	"tribute",
	"covers",
	"performs",
	"plays",
	"karaoke",
	"in the style of",
	"ukulele",
	"instrumental",
	"orchestra",
	"string quartet",
	"lullaby",
	"piano version",
	"jazz version",
}

// Clean canonicalizes free text for comparison: lowercase, diacritics
// folded, punctuation and symbols (ASCII and Unicode general punctuation
// alike) turned into spaces, whitespace collapsed. Total over any input.
func Clean(text string) string {
	lower := strings.ToLower(text)
	if folded, _, err := transform.String(diacriticFold, lower); err == nil {
		lower = folded
	}

	var b strings.Builder
	b.Grow(len(lower))
	lastSpace := true
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}

// RemoveFeaturing strips featuring credits ("(feat. X)", "ft. X",
// "featuring X", "with X") and any remaining parenthetical content.
func RemoveFeaturing(text string) string {
	out := parenFeatRegex.ReplaceAllString(text, "")
	out = trailingFeatRegex.ReplaceAllString(out, "")
	out = parentheticalRegex.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// StripVersionTags removes bracketed segments that only describe a release
// variant (remaster, remix, deluxe edition, a bare year) rather than the
// work itself. Idempotent.
func StripVersionTags(text string) string {
	out := versionTagRegex.ReplaceAllString(text, "")
	out = bracketYearRegex.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// NormalizeArtist canonicalizes a possibly multi-artist credit so that
// artist order is irrelevant: "Bob & Alice" and "Alice & Bob" normalize to
// the same string. Segments are split on "," and "&", cleaned and
// de-featured individually, sorted, and rejoined with spaces.
func NormalizeArtist(text string) string {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '&'
	})

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		cleaned := Clean(RemoveFeaturing(seg))
		if cleaned == "" {
			continue
		}
		parts = append(parts, cleaned)
	}
	sort.Strings(parts)

	return strings.Join(parts, " ")
}

// IsTributeBand reports whether candidateArtist looks like a cover or
// tribute act for sourceArtist. Used purely as a scoring penalty signal,
// never as a hard filter.
func IsTributeBand(candidateArtist, sourceArtist string) bool {
	candidate := Clean(candidateArtist)
	source := Clean(sourceArtist)

	if candidate == "" || candidate == source {
		return false
	}
	if source != "" && strings.Contains(candidate, source) {
		return true
	}
	for _, keyword := range tributeKeywords {
		if strings.Contains(candidate, keyword) {
			return true
		}
	}
	return false
}
