// Package efficiency computes how completely and how promptly orders were
// fulfilled by the invoices issued against them.
//
// Every function in this package is a pure transformation of in-memory
// collections: callers load orders, order lines, invoices and the catalog,
// build a JoinIndex and an InvoiceIndex once, and then run any number of
// views over the same inputs. Nothing here logs or performs I/O.
package efficiency
