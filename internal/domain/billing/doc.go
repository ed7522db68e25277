// Package billing holds the charge and payment side of the subscriber
// ledger.
//
// A Billing row is one expected charge for a customer in a monthly period
// (subscription fee, activation, or the operator's own recurring cost). A
// Payment records money actually received against a subscription. Bulk
// linkage creates billings when decoders are handed out; settling a cycle
// records the payment and rolls the renewal date forward.
package billing
