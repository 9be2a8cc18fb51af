// Package ui implements the chainboard terminal dashboard with Bubble Tea.
//
// Core abstractions:
//   - View: a screen region with its own model, update, and view (Elm-style)
//   - Panel: a dashboard tab (supplier, shipment, inventory, forecast,
//     routing, batch, models) hosting a form and its results
//   - Form: labeled text inputs with focus cycling and inline validation
//   - FocusManager: rotates the active panel
//   - OverlayStack: modal views layered over the active panel
//   - KeybindRegistry/KeyHandler: spacemacs-style SPC leader sequences
//
// The app model talks to the backend exclusively through tea.Cmd wrappers
// around internal/api; panels never block.
package ui
