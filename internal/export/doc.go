// Package export writes aggregated sweep results for use outside sobolvd.
//
//   - [JSON]: temperatures, term labels, mean shares, and optionally the raw
//     per-run estimates. Non-finite values are written as null.
//   - [CSV]: one row per temperature, one column per term plus "other".
//   - [XLSX]: a workbook with one sheet per term order plus "other" and
//     "std_dev".
//   - [SVG]: a stacked chart of cumulative shares over temperature.
package export
