// Package commands defines the chainboard CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - (none)            Launch the full-screen dashboard
//   - ping              Check the backend's root status
//   - health            Show backend health, models, and config
//   - predict supplier  Score one supplier's reliability
//   - predict shipment  Score one shipment's delay risk
//   - optimize inventory Compute an inventory policy
//   - optimize routing  Plan vehicle routes
//   - forecast          Fetch a demand forecast
//   - batch suppliers   Evaluate a supplier roster CSV
//   - models            Inspect or reload the model registry
//   - scenario          Manage saved routing scenarios
//
// # Implementation
//
// The root command resolves configuration (flags over environment over the
// HCL config file), then builds the shared API client and request recorder
// before any subcommand runs. Every subcommand honors --json for scripting;
// without it results print as aligned text.
package commands
