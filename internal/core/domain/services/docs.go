// Package services provides domain services that orchestrate business
// operations across multiple aggregates. It implements workflows that don't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - SystemProvisioner: builds an order's systems and instantiates their
//     checklists from the active templates for each system type
package services
