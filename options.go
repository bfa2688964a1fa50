package zengin

// Option is a functional option for configuring construction.
type Option func(*config)

type config struct {
	workers         int     // branch files read concurrently while loading JSON
	searchFields    []Field // fields FindBanksByName/FindBranchesByName match against
	skipFingerprint bool    // snapshot open: trust the stored fingerprint
}

func defaultConfig() *config {
	return &config{
		workers:      0, // Single-threaded; use WithWorkers(n) to parallelize
		searchFields: []Field{FieldName},
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithWorkers sets how many branch files are read concurrently when loading
// a JSON dataset. Values <= 1 load sequentially. Snapshots ignore it.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithSearchFields sets which fields FindBanksByName and FindBranchesByName
// match against. A record matches if any listed field matches. The default
// is FieldName only. Unknown fields are rejected at construction.
// The fields are copied, so the caller can reuse the slice after this call.
func WithSearchFields(fields ...Field) Option {
	return func(c *config) {
		c.searchFields = append([]Field(nil), fields...)
	}
}

// WithoutFingerprintCheck skips recomputing the dataset fingerprint when a
// snapshot is opened. The footer checksum is still verified.
func WithoutFingerprintCheck() Option {
	return func(c *config) {
		c.skipFingerprint = true
	}
}
