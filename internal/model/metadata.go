package model

// Metadata describes the provenance of a raw dataset: source name,
// source URL, fetch timestamp and whatever else the fetcher recorded.
// It is propagated from the input file into the export envelope.
type Metadata map[string]any

// String returns the value under key if it is a non-empty string,
// otherwise fallback.
func (m Metadata) String(key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Clone returns a shallow copy, so exports can augment the metadata
// without touching the batch's copy.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
