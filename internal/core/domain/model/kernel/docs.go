// Package kernel holds the value objects shared by every crowdship aggregate.
//
// The package includes:
//   - UUID: identifier of users, shipments, trips and reviews
//   - Country: an ISO 3166-1 country parsed with golang.org/x/text/language
//   - Route: an origin/destination pair of distinct countries
//
// All value objects are immutable; their zero values fail Validate.
package kernel
