// Package funnel turns raw enquiry rows into a cleaned table and the funnel
// conversion metrics (Enquiry -> Sample Approved -> Order Confirmed).
//
// The engine is pure: it keeps no state between calls, performs no I/O and is
// safe for concurrent use. Rows are dropped when the Week column exists and the
// row's Week cell is blank; an empty result is reported as errors.ErrEmptyDataset.
// Monetary columns are coerced with a CurrencyCoercer, which maps anything it
// cannot parse to 0.
package funnel
