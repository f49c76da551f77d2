// Package domain models location-scoped news items and the sentiment
// decision procedure applied to their headlines.
//
// # Sentiment Classification
//
// Headlines are classified by a two-stage cascade:
//
//	Rule stage:  fixed keyword sets matched as substrings against the
//	             lowercased headline. Negative overrides (incident and
//	             disruption vocabulary) are checked before positive
//	             overrides so a safety-relevant signal is never masked by
//	             an unrelated positive word in the same headline. A rule
//	             hit is maximally confident (score 1.0).
//	Model stage: a pretrained binary classifier invoked on at most the
//	             first 512 characters of the original-case text. Labels
//	             containing "NEG" map to negative, everything else to
//	             positive. Predictions under the 0.60 confidence
//	             threshold are downgraded to neutral rather than trusted
//	             as directional sentiment.
//
// Every result carries a [Source] naming which stage produced it:
//
//	rule         keyword override matched
//	transformer  model prediction (directional or downgraded)
//	fallback     model unavailable or errored; degraded to neutral
//	empty        input was empty or whitespace-only
//
// Classification never fails: model errors degrade to a neutral
// zero-confidence result for that one headline.
//
// # Location Resolution
//
// Coordinates are resolved to a place name through a reverse-geocoding
// capability. Address fields are tried in a fixed priority order (city,
// state, county, then the full display name) and the first non-empty
// field wins. Any geocoding error resolves to the literal fallback
// "India" so resolution never fails the query.
//
// # Recency
//
// A feed entry is current when its publish time is not strictly earlier
// than now(UTC) minus the lookback window. Entries without a parseable
// publish time are treated as unknown-but-eligible: they pass the filter
// and carry a null published field in the output.
package domain
