// Package conflict answers two questions for the assignment workflow: does a
// job's schedule overlap any job already assigned to a technician, and is the
// technician scheduled off on a given day. The checks are pure queries over
// caller-supplied snapshots: nothing is mutated, no I/O happens, and data
// quality problems degrade to "no conflict" instead of failing, so a bad
// record can never block the scheduling UI.
package conflict
