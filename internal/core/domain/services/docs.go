// Package services holds the domain services of the ordering system: logic that spans
// aggregates or does not belong to any one of them.
//
// The package includes:
//   - SignatureVerifier: HMAC-SHA256 authentication of payment gateway callbacks
//   - AccrualPolicy: loyalty points earned by a delivered order
//   - NotificationRouter: the (role, type) routing table for notification observers
//   - notification composers for lifecycle and ledger events
package services
