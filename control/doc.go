// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics for wen link servers. The collectors are passive
// Prometheus counters incremented from the serving layer; the link core
// itself stays free of instrumentation so its determinism guarantees
// hold.
package control
