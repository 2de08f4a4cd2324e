// Package match joins a secondary table into a primary table by identity key.
//
// The primary table is indexed once by its identity column (the first column by
// default). Every secondary row is keyed through a keys.Policy and looked up in
// that index. On a hit, the non-empty cells of the secondary row are copied into
// a contiguous block of columns starting at Options.Offset (column AW by
// default) on the matched primary row. Misses are reported with a reason and
// cause no write.
//
// The primary table passed in is never modified: Match works on a clone and
// returns it, so nothing is written unless the caller persists the result.
// Columns left of the block and every existing primary row are preserved.
package match
