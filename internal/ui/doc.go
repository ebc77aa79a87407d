// Package ui contains the Bubble Tea program that coordinates TagMaster's
// windows, screens and panes. The Model owns the session and is its only
// writer; every collaborator reports back through Update as a message.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse gestures, task completions, host events).
//   - Keys are routed by the kind of the focused window: Main handles screen
//     and pane keys (input.go), the dialog windows own their forms (forms.go).
//
// Asynchronous work:
//   - Window opens, logins and folder picks run as tasks on the command bus
//     (internal/ui/command). Each task completes with exactly one
//     command.Done, applied in arrival order by handleTaskDoneMsg.
//   - A host.Host streams window lifecycle events and a backend.Watcher
//     streams file-tree listings; Update waits on both feeds and re-arms the
//     wait after every event.
//
// Rendering is pure apart from help width bookkeeping: View shows the focused
// window and ViewFor renders any registered window.
package ui
