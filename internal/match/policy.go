package match

// Policy holds the selection thresholds for one target catalog. The two
// platforms are calibrated separately: their search endpoints differ in
// how noisy returned text fields are, so a floor that works for one
// produces junk matches on the other.
type Policy struct {
	// HighConfidence short-circuits query iteration: when a single query's
	// top candidate exceeds it, remaining queries are skipped.
	HighConfidence float64

	// AcceptFloor is the minimum running-best score required once all
	// queries are exhausted.
	AcceptFloor float64

	// DecentScore bounds the band in which originality and popularity may
	// override a marginally higher raw text score.
	DecentScore float64
}

// DefaultPolicy is the starting point for new catalog adapters.
var DefaultPolicy = Policy{
	HighConfidence: 0.8,
	AcceptFloor:    0.6,
	DecentScore:    0.5,
}
