// Package networth provides the domain types and calculations for a
// personal net-worth reporting pipeline. A portfolio provider is
// sampled into immutable daily snapshots; reports compare a snapshot
// against an earlier one at daily, weekly, monthly, quarterly or
// yearly granularity.
//
// The core functionalities include:
//   - Snapshot Types: a point-in-time view of every account in the
//     portfolio, with asset/debt categorization and the provider's
//     classification metadata.
//   - Snapshot Repository: one JSON file per calendar day with
//     user-only permissions, plus a retention-driven cleanup that
//     keeps milestone dates forever.
//   - Delta Builder: account-by-account changes between two
//     snapshots, aggregated to parent accounts and sorted by the
//     size of the move.
//   - Allocation: a Stocks/Bonds/Crypto/Real Estate/Cash/Other
//     breakdown computed from the provider's classification metadata.
//
// This package serves as the foundational logic for the `nwr`
// command-line tool; scheduling arithmetic lives in the date
// sub-package.
package networth
