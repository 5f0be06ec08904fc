// Package ui contains the Bubble Tea program that draws a drill-down menu.
// The Model owns one drilldown.Menu and acts as its Surface: the instance
// attaches its handlers to the model, and the model hands it every key press,
// mouse click and deferred tick it receives.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a
//     focused function.
//   - Key presses become router.Key events and mouse clicks router.Activate
//     events for the element drawn on the clicked row (internal/ui/view.go
//     lays rows out once for both drawing and hit-testing).
//   - While the search field holds focus, keys edit the query instead; the
//     fuzzy results reveal the chosen entry through Menu.Reveal
//     (internal/ui/input.go).
//
// State ownership:
//   - Navigation state, focus and tab order live in the menu instance. After
//     each transition it calls Render with a fresh drilldown.View, which is
//     all View needs to draw.
//   - Following a leaf runs through the internal/ui/command bus; the program
//     quits and the selected entry is available from Model.Selected.
//
// Backend interactions:
//   - An optional backend.Watcher reloads the menu file. Each reload destroys
//     the current instance and initialises a new one from the new document.
package ui
