// Package services holds the stateless domain services of the order
// workflow:
//   - DeliveryZoneResolver: address to zone quote
//   - CartConsolidator: raw cart to priced, deduplicated order lines
//   - InventoryLedger: all-or-nothing reserve and release over locked products
package services
