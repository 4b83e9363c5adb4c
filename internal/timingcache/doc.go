// Package timingcache moves .lit_test_times.txt files between the local
// build tree and an S3-compatible bucket. Lit uses the timing files to order
// tests for parallelism, and carrying them between premerge invocations cuts
// test time by roughly 15%.
//
// Objects live under the lit_timing/ key prefix, keyed by the file's path
// relative to the build tree root. Transfers run on a bounded worker pool.
// Cache failures are logged and swallowed: a cold cache only costs time.
package timingcache
