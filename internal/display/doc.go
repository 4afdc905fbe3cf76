// Package display owns everything sfollow writes to the terminal.
//
// Job output goes to the primary stream untouched. Notices, the waiting
// spinner and the end-of-run summary go to the status stream. The spinner is a
// transient line ending in a carriage return; Display erases it before any
// persistent line so the two never interleave.
package display
