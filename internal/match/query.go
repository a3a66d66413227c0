package match

import (
	"fmt"
	"strings"

	"github.com/tunebridge/tunebridge/internal/domain"
)

// numberWords covers the small integers that platforms sometimes spell out
// in display titles ("7 rings" vs "seven rings").
var numberWords = map[string]string{
	"0": "zero", "1": "one", "2": "two", "3": "three", "4": "four",
	"5": "five", "6": "six", "7": "seven", "8": "eight", "9": "nine",
	"10": "ten", "11": "eleven", "12": "twelve", "13": "thirteen",
	"14": "fourteen", "15": "fifteen", "16": "sixteen", "17": "seventeen",
	"18": "eighteen", "19": "nineteen", "20": "twenty",
}

// GenerateQueries produces the ordered list of search queries for a piece
// of source metadata, most specific first. The sequence is deterministic:
// the same input always yields the same queries, so a selection pass can
// be replayed. Duplicates are removed keeping first occurrence.
func GenerateQueries(source domain.ContentMetadata) []string {
	if source.ContentType == domain.ContentTypeArtist {
		return artistQueries(source)
	}

	title := strings.TrimSpace(source.Title)
	artist := strings.TrimSpace(source.Artist)

	var queries []string

	// Exact-identifier lookup beats any text heuristic.
	if source.ISRC != "" {
		queries = append(queries, "isrc:"+strings.ToUpper(strings.TrimSpace(source.ISRC)))
	}

	queries = append(queries, quoted(title, artist))

	deFeatTitle := RemoveFeaturing(title)
	deFeatArtist := RemoveFeaturing(artist)
	queries = append(queries, quoted(deFeatTitle, deFeatArtist))

	strippedTitle := StripVersionTags(deFeatTitle)
	queries = append(queries, quoted(strippedTitle, deFeatArtist))

	if album := strings.TrimSpace(source.Album); album != "" {
		queries = append(queries, looseJoin(deFeatTitle, album))
		queries = append(queries, looseJoin(deFeatTitle, StripVersionTags(album)))
	}

	// Most permissive phrasing: everything cleaned, nothing quoted.
	looseTitle := Clean(strippedTitle)
	looseArtist := Clean(deFeatArtist)
	queries = append(queries, looseJoin(looseTitle, looseArtist))

	// Catalogs disagree on how collaborations are delimited.
	for _, variant := range artistDelimiterVariants(artist) {
		queries = append(queries, looseJoin(looseTitle, variant))
	}

	// Display titles sometimes spell small numbers out.
	if worded := numbersToWords(looseTitle); worded != looseTitle {
		queries = append(queries, looseJoin(worded, looseArtist))
	}

	return dedupe(queries)
}

// artistQueries skips all title logic: for artist content the only useful
// signals are the cleaned name, quoted then unquoted.
func artistQueries(source domain.ContentMetadata) []string {
	name := strings.TrimSpace(source.Artist)
	if name == "" {
		name = strings.TrimSpace(source.Title)
	}
	cleaned := Clean(name)
	if cleaned == "" {
		return nil
	}
	return dedupe([]string{fmt.Sprintf("%q", cleaned), cleaned})
}

// artistDelimiterVariants rewrites a multi-artist credit with the
// delimiter conventions seen across catalogs: "&", ",", and plain spaces.
func artistDelimiterVariants(artist string) []string {
	segments := strings.FieldsFunc(artist, func(r rune) bool {
		return r == ',' || r == '&'
	})
	if len(segments) < 2 {
		return nil
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if trimmed := strings.TrimSpace(seg); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) < 2 {
		return nil
	}

	return []string{
		strings.Join(parts, " & "),
		strings.Join(parts, ", "),
		strings.Join(parts, " "),
	}
}

// numbersToWords replaces standalone small-integer tokens with their
// spelled-out form.
func numbersToWords(text string) string {
	fields := strings.Fields(text)
	changed := false
	for i, field := range fields {
		if word, ok := numberWords[field]; ok {
			fields[i] = word
			changed = true
		}
	}
	if !changed {
		return text
	}
	return strings.Join(fields, " ")
}

func quoted(title, artist string) string {
	return strings.TrimSpace(fmt.Sprintf("%q %q", title, artist))
}

func looseJoin(a, b string) string {
	return strings.TrimSpace(strings.TrimSpace(a) + " " + strings.TrimSpace(b))
}

func dedupe(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	out := queries[:0]
	for _, q := range queries {
		trimmed := strings.TrimSpace(q)
		if trimmed == "" || trimmed == `"" ""` {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
