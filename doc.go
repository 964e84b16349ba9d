// Package kil tracks inventory line items: their current stock level, their
// pending shipment and their consumption history.
//
// The core functionalities include:
//   - Line items: a named stock count with at most one scheduled shipment,
//     mutated by receiving a shipment, recording a usage or scheduling an order.
//   - Store: the authoritative, insertion ordered collection of line items. It
//     enforces unique names and notifies its observers synchronously after
//     every change.
//   - Projection: a live filtered and sorted view over a Store, always
//     consistent with the Store when read.
//   - Codec: a lossless JSON document format (".kildata") with strict,
//     all-or-nothing import.
//   - Report: a stock valuation using optional unit costs.
//
// The package never logs nor prints: every operation reports failures as an
// error wrapping one of the error kinds (ErrInvalidInput, ErrDuplicateName,
// ErrInsufficientStock, ErrNotFound, ErrInvalidFormat).
//
// This package serves as the foundational logic for the `kil` command-line tool.
package kil
