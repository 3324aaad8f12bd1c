// Package journal persists messages received by the msglogd daemon in a
// SQLite database. The store is append-mostly: clients fire entries at the
// daemon and read them back newest-first.
package journal
