// Package session runs one interactive chatsh session.
//
// # Overview
//
// A session greets the user, reads a request, asks a converter for a shell
// command, shows the result and lets the user decide what to do with it.
// It ends when the user quits, cancels, or a command runs successfully.
//
// # States
//
//	Begin → WaitingText ⇄ WaitingUserChoice → End
//
//   - Begin: the greeting is printed once.
//   - WaitingText: the user types a request, or "exit"/"quit".
//   - WaitingUserChoice: a converted command is on screen and stored as the
//     last detail. This state is never entered without one.
//   - End: the loop returns.
//
// Transitions are computed by Next, which has no side effects. The
// Controller performs the I/O for each state and feeds the outcome back to
// Next as an Event.
//
// # Errors
//
// Conversion and execution failures are shown to the user and the session
// goes back to WaitingText with the last detail cleared. Nothing is
// retried automatically. Controller.Run only returns an error when the
// terminal itself fails.
//
// # Choices
//
// From WaitingUserChoice the user picks one of:
//
//   - Execute: run the stored command.
//   - EditAndRun: edit the stored command (pre-filled) and run the result.
//   - AskAnother: drop the stored command and ask again.
//   - Cancel: end the session.
//
// A successful run ends the session; a failed one returns to WaitingText.
package session
