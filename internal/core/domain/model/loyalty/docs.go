// Package loyalty implements the points ledger of franchise members.
//
// Members earn a flat number of points for each delivered order whose pre-discount
// total reaches the accrual threshold, spend them as order discounts and claim gifts
// for GiftCost points. The ledger is append-only: every balance change is paired with
// a Transaction row.
package loyalty
