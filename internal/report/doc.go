// Package report writes a machine-readable record of a batch run.
//
// A report lists every source file with its destination, the per-zone texts
// that produced its name, and the failure kind when it was skipped. Reports
// are YAML so that operators can read them as easily as scripts can.
package report
