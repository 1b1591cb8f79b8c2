// Package schedule normalizes the historical job schedule formats into
// canonical time windows. Four representations accumulated over the system's
// evolution are supported; classification happens once per record and the
// first matching shape wins. All parsing is total: malformed fields are
// skipped and a record that yields no window simply cannot conflict.
package schedule
