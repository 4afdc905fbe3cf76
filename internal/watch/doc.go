// Package watch follows a set of Slurm jobs until all of them finish.
//
// Watcher runs a single cooperative loop. Every tick it sweeps the open log
// tailers; every QueryEvery ticks it asks squeue for the jobs that have not
// finished and reacts to phase changes. A job that starts gets its log files
// opened from the beginning. A job that finishes has its tailers drained and
// closed before its finish notice is printed, so no output is lost or
// reordered behind the notice.
package watch
