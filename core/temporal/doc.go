// Package temporal classifies spreadsheet columns by their header and converts
// raw cell values into dates or times of day without ever guessing.
//
// A column is classified once, when the table is loaded:
//
//   - date column: the header contains "fecha" and does not contain "hora"
//   - time column: the header starts with "tc", "ta" or "tt" (tiempoContacto,
//     tiempoArribo, tiempoTermino)
//   - plain column: anything else
//
// Headers are compared case-insensitively with accents removed. The date rule is
// checked first so a header is never both.
//
// Parsing returns (value, ok). A value that cannot be read unambiguously is
// reported as not ok and callers keep the raw cell untouched. There is no
// generic fallback parser: "31/02/2023" stays a string.
//
// Bare numbers in date columns are read as serial day counts from SerialEpoch
// (1899-12-31) when they fall in [MinSerial, MaxSerial]. Times of day are
// anchored on 1899-12-30; only their clock part is meaningful.
package temporal
