// Package present drives a finished scene to the screen: it renders on
// every expose event and stops on quit or Escape.
//
// The loop is an explicit state machine with three states:
//
//	Idle --Expose--> Rendering --presented--> Idle
//	any  --Quit/Escape--> Terminated
//
// All other events are ignored. The loop knows nothing about windows; a
// window backend feeds it Events through an EventSource and performs the
// actual drawing through a Presenter. This keeps every transition testable
// without a window system.
//
// Loop is NOT safe for concurrent use. Drive it from the goroutine that
// owns the window.
package present
