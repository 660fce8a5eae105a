// Package fingerprint computes a canonical 64-bit hash of a row's comparable content.
//
// The hash is FNV-1a 64 over a locale-independent encoding of every column: a separator
// byte, the column kind tag and the canonical bytes of the value. Two rows the diff
// engine considers equal always hash identically, so equal fingerprints let callers
// skip a full row comparison. Unequal rows may collide with negligible probability;
// fingerprints are a pre-filter, never a proof.
//
// Values that cannot be converted to their declared kind are hashed through their
// invariant string rendering. Fallbacks reports how often that happened.
package fingerprint
