package policy

// Decision is the outcome of a single cache policy query.
// A fresh value is produced on every call; it carries no state beyond itself.
type Decision uint8

const (
	// Cache admits the item into the upstream cache.
	Cache Decision = iota
	// NoCache rejects the item.
	NoCache
)

// ShouldCache reports whether the decision admits the item.
func (d Decision) ShouldCache() bool {
	return d == Cache
}

func (d Decision) String() string {
	if d == Cache {
		return "cache"
	}
	return "no_cache"
}
