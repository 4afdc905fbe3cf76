// Package tail follows a single growing log file.
//
// A Tailer is driven from outside: the caller invokes Sweep on its own tick
// and Drain once the writer is known to be done. Sweep never blocks waiting
// for data. Output is decoded as UTF-8 with invalid sequences replaced, and a
// multi-byte sequence split across two sweeps is held back until it completes.
package tail
