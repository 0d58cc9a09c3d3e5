// Package dataprocessing implements the company analysis pipeline: it turns
// uploaded tabular datasets into scored, classified and aggregated results.
//
// # Architecture
//
// The package is organized around three components:
//
//  1. Parser: quote-aware delimited-text parsing (plus .xlsx ingestion)
//  2. Normalizer: typed numeric/date derivation with safe defaults
//  3. Processor: the batch orchestrator wiring classification, scoring and
//     aggregation into one AnalysisResult
//
// # Data Flow
//
//	Uploads → Parser → RawRecords → Normalizer → Classifier → Scoring →
//	Status Detection → Ranking → Aggregation → AnalysisResult
//
// # Error Handling
//
// Malformed data never terminates a batch. Rows with a field-count mismatch
// are dropped and counted, unparseable fields fall back to documented
// defaults, and a degenerate batch scores with floored normalization bounds.
// The dropped-row count is a diagnostic on the result, not an error.
//
// # Concurrency
//
// Per-file parsing has no cross-file dependency and runs one goroutine per
// upload. Normalization onward depends on the merged batch (for min/max
// bounds) and runs single-pass. Each Process call owns all of its
// intermediate state; nothing is shared between batches.
package dataprocessing
