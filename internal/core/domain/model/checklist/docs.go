// Package checklist models the work required to prepare one system: a static
// template of ordered steps, the per-system checklist instantiated from it,
// and the completion records written as work is performed.
//
// A template is treated as immutable once instantiated: Instantiate copies the
// step definitions into the checklist, so later template edits never propagate
// to checklists already in flight.
//
// A step counts as done only when a completion with a worker timestamp exists
// and, for QA-required steps, a QA-check timestamp from a second person as
// well. The checklist is complete when every step is done; this is what drives
// a system's derived completion status.
package checklist
