// Package plot renders aggregated sweep results in the terminal.
//
//   - [CumulativeChart]: stacked cumulative shares over temperature, one
//     line per band boundary.
//   - [Table]: shares per term at selected temperatures, with a sparkline of
//     each term across the full sweep.
package plot
