// Package shipment implements the Shipment aggregate: a shopper's request to have
// products bought abroad and brought to them by a traveler.
//
// Key business rules:
//   - A shipment has at least one product and the product prices sum to at most MaxTotalPrice
//   - Fees are always FeeRate of the reward, rounded to cents
//   - The desired delivery date must lie in the future whenever the shopper saves the shipment
//   - Only open shipments (Pending, UnderReview, Published) can be edited, deleted, accepted or expired
//   - The traveler can review the shopper once, after the shopper confirmed delivery
package shipment
