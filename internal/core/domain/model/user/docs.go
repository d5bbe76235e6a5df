// Package user implements the User aggregate: identity, credentials lifecycle
// (verification codes, password resets) and the reputation a user accumulates as
// shopper and traveler.
//
// Soft-deleted users stay in storage with IsDeleted set; repositories never return them.
package user
