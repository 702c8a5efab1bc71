// Package core orchestrates the aggregation queries behind each command
// and owns presentation-side ranking.
package core
