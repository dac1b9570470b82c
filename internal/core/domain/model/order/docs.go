// Package order contains the order aggregate: the procurement order itself,
// its owned systems, and the lifecycle rules that govern them.
//
// An order moves through five statuses: ordered, in_progress, qa_review,
// ready_to_deliver, and complete. The board is deliberately not a strict
// pipeline: any non-terminal status may move to any other non-terminal status,
// so operators can pull an order backward to reflect rework. Complete is
// terminal and is gated on every owned system being complete, which in turn
// derives from checklist completion.
//
// All mutations go through aggregate methods so invariants hold: no mutation
// after the terminal status, priority stays within [0, 5], and the
// updated_at stamp that drives the read-side urgency flag is refreshed on
// every change.
package order
