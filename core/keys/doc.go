// Package keys canonicalizes raw cell values into comparable identity strings.
//
// Every key-based operation of the consolidator (deduplication, last-write-wins
// accumulation, cross-file joins) compares records through a Policy. The policy
// decides how internal whitespace is treated and whether case is folded:
//
//   - Consolidation: trims and collapses whitespace runs to a single space.
//   - Join: trims and removes every whitespace character.
//
// Both predefined policies are case-sensitive. Case folding is available as an
// explicit opt-in (Policy.FoldCase) and is never applied implicitly.
//
// An empty key means "no identity": callers must exclude such records from every
// key-based operation.
//
// # Usage
//
//	key := keys.Consolidation.Normalize(record.Get("Expediente"))
//	if key == "" {
//	    // skip
//	}
package keys
