// Package kernel holds value objects shared by every storefront aggregate:
// identifiers (UUID) and money (Money, backed by shopspring/decimal).
package kernel
