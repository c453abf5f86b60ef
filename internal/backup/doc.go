// Package backup keeps timestamped copies of the appcheck config file so
// that `init --force` and `config set` can be undone.
//
// Snapshots live flat in one directory, named <id>_<original base name>,
// where the id is a UTC timestamp with nanoseconds. Lexical order of ids is
// chronological order. Only the newest Manager retention snapshots are kept.
//
//	m := backup.NewManager(backup.WithDir(dir))
//	snap, err := m.Save(configPath) // nil snapshot when the file is absent
//	...
//	err = m.Restore(snap.ID, configPath)
package backup
