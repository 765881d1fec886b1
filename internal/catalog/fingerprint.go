// Package catalog owns the job catalog: the stable identity key, the
// idempotent upsert path and the per-source staleness sweep.
package catalog

// fingerprintSep separates the source identifier from the native key. It
// never appears in source identifiers, so fingerprints cannot collide
// across sources.
const fingerprintSep = "::"

// Fingerprint derives the stable identity key for a posting: the source
// identifier plus the source-native id, falling back to the posting url when
// the source exposes no native id. Title, description and location changes
// between observations never change the fingerprint.
func Fingerprint(source, nativeID, url string) string {
	key := nativeID
	if key == "" {
		key = url
	}
	return source + fingerprintSep + key
}
