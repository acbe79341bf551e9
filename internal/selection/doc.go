// Package selection filters, sorts and groups shape lists and computes the
// "what changed" deltas that back Select.LAST queries.
package selection
