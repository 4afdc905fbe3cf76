// Package slurm mediates access to the Slurm command line tools sfollow reads
// job information from.
//
// squeue supplies job states and the caller's most recent job; scontrol
// supplies per-job metadata such as the job name and the StdOut/StdErr paths.
// Output is parsed into typed values, and every failure of the external tools
// surfaces as an apperrors query error. Command execution sits behind the
// Executor interface so tests can script the tools' output.
package slurm
