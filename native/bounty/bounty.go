// Package bounty implements the multi-asset incentive ledger: an asset
// registry with append-only history, a funding ledger tracking custody
// top-ups, a per-(asset, account) pending-reward table with batch mutators,
// self-service claims backed by the external custody vault, and bounded
// surplus extraction. Every mutating entry point is gated by role membership
// and, where funds move, by the module pause switch.
package bounty

const moduleName = "bounty"

// DefaultNativeSymbol is the asset identifier whose funding path requires a
// matching attached native value.
const DefaultNativeSymbol = "RHT"
