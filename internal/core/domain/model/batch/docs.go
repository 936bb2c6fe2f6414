// Package batch provides the Batch aggregate: a group of orders moving
// through the fulfillment pipeline together under one shared work timer.
//
// A batch holds a single stage position for all its member orders and the
// shared clock every member observes. The first worker to join starts the
// clock; later joiners never reset it. Which workers are currently on the
// batch is ledger state and is always derived, never stored here.
package batch
