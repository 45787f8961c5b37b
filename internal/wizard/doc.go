// Package wizard contains the transfer request state machine.
//
// Allowed here:
// - the step enumeration and its transition table
// - the draft being assembled and its validation guards
// - scoped timers (payment countdown, clipboard flash) owned by the controller
//
// Not allowed here:
// - rendering, key bindings or terminal I/O
// - catalog storage
//
// All state changes happen inside controller methods called from the Bubble
// Tea update loop. Timers are generation tagged: a message from a cancelled
// timer is dropped when it arrives.
package wizard
