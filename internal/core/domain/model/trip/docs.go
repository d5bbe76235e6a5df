// Package trip implements the Trip aggregate and its capacity ledger.
//
// Key business rules:
//   - Origin and destination differ and the departure date lies in the future when the trip is saved
//   - Available and consumed space stay in [0, 100] kg and never add up to more than 100
//   - Accepting a shipment moves its weight from available to consumed space and puts the trip OnTravel
//   - Trips on travel, completed or cancelled cannot be edited; trips on travel or completed cannot be deleted
package trip
