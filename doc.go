// Package zengin provides read-only lookup of Japanese Zengin bank and branch
// codes.
//
// A Zengin code identifies a bank with four digits and a branch within that
// bank with three. Codes are always handled as zero-padded strings.
//
// # Basic Usage
//
// Loading the bundled dataset:
//
//	z, err := zengin.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Exact lookups never fail; a miss is reported with the boolean:
//
//	if bank, ok := z.Bank("0001"); ok {
//	    fmt.Println(bank.Name)
//	}
//	if branch, ok := z.Branch("0001", "001"); ok {
//	    fmt.Println(branch.Name)
//	}
//
// Name searches take a regular expression (RE2 syntax) and return every
// match in dataset order:
//
//	banks, err := z.FindBanksByName("みずほ")
//	if err != nil {
//	    log.Fatal(err) // invalid pattern
//	}
//
// # Datasets
//
// New uses a representative subset of the zengin-code data compiled into the
// binary. A complete zengin-code data directory can be used with NewFromDir or
// NewFromFS. A loaded dataset can be written as a compact snapshot with
// WriteSnapshot and reopened with OpenSnapshot, which skips JSON parsing.
//
// # Concurrency
//
// A Zengin value is immutable once constructed. All query methods are safe
// for concurrent use.
//
// # Package Structure
//
//   - Public API: zengin.go (constructors, lookups), bank.go (Bank, Branch, Field)
//   - Configuration: options.go (Option, With* functions)
//   - Index building: registry.go (validation, code maps), kana.go
//   - Search: search.go
//   - Snapshots: snapshot_header.go, snapshot_writer.go, snapshot_reader.go, fingerprint.go
//   - Dataset parsing: internal/dataset/
//   - Platform: madvise_*.go (read hints), preallocate_*.go (snapshot file space)
package zengin
