package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fulldiveVR/codex/internal/errors"
	"github.com/fulldiveVR/codex/internal/paths"
	"github.com/fulldiveVR/codex/pkg/fileutil"
)

// DefaultRetention is the number of snapshots kept.
const DefaultRetention = 5

// idLayout sorts lexically in time order.
const idLayout = "20060102T150405.000000000"

// ErrNoBackups indicates the backup directory holds no snapshots.
var ErrNoBackups = errors.New("no backups found")

// Snapshot describes one saved copy.
type Snapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	SHA256    string    `json:"sha256" yaml:"sha256"`
}

// Manager saves, lists, and restores snapshots in one directory.
type Manager struct {
	dir       string
	retention int
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithDir sets the snapshot directory.
func WithDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.dir = dir
		}
	}
}

// WithRetention sets how many snapshots Save keeps.
func WithRetention(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retention = n
		}
	}
}

// NewManager creates a Manager storing snapshots under
// <config dir>/backups unless WithDir says otherwise.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		dir:       filepath.Join(paths.ConfigDir(), "backups"),
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the snapshot directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Save copies path into the snapshot directory and prunes old snapshots.
// A missing path is not an error; the returned snapshot is nil.
func (m *Manager) Save(path string) (*Snapshot, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	if err := paths.EnsureDir(m.dir, 0); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	created := m.now().UTC()
	snap := &Snapshot{Name: filepath.Base(path), CreatedAt: created, SHA256: digest(data)}
	// Two saves inside one clock tick get distinct ids.
	for {
		snap.ID = created.Format(idLayout)
		snap.Path = filepath.Join(m.dir, snap.ID+"_"+snap.Name)
		if _, err := os.Stat(snap.Path); os.IsNotExist(err) {
			break
		}
		created = created.Add(time.Nanosecond)
	}

	if err := fileutil.AtomicWriteFile(snap.Path, data, info.Mode().Perm()); err != nil {
		return nil, errors.Wrap(err, "writing backup")
	}
	if err := m.Prune(m.retention); err != nil {
		return snap, err
	}
	return snap, nil
}

// List returns every snapshot, newest first.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackups
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var snaps []Snapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, name, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			continue
		}
		created, err := time.Parse(idLayout, id)
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{
			ID:        id,
			Name:      name,
			Path:      filepath.Join(m.dir, entry.Name()),
			CreatedAt: created,
		})
	}
	if len(snaps) == 0 {
		return nil, ErrNoBackups
	}

	slices.SortFunc(snaps, func(a, b Snapshot) int {
		return strings.Compare(b.ID, a.ID)
	})
	return snaps, nil
}

// Get returns the snapshot with id, or the newest one when id is empty.
func (m *Manager) Get(id string) (*Snapshot, error) {
	snaps, err := m.List()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return &snaps[0], nil
	}
	for idx := range snaps {
		if snaps[idx].ID == id {
			return &snaps[idx], nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "backup %s", id)
}

// Restore writes the snapshot with id (newest when empty) over dst. The
// current dst is saved first so a restore can itself be undone.
func (m *Manager) Restore(id, dst string) (*Snapshot, error) {
	snap, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	data, err := fileutil.ReadFileWithLimit(snap.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", snap.ID)
	}
	snap.SHA256 = digest(data)

	if _, err := m.Save(dst); err != nil {
		return nil, errors.Wrap(err, "saving current config")
	}
	if err := paths.EnsureDir(filepath.Dir(dst), 0); err != nil {
		return nil, errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteFile(dst, data, 0o644); err != nil {
		return nil, errors.Wrap(err, "restoring backup")
	}
	return snap, nil
}

// Prune removes all but the newest keep snapshots.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}
	snaps, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackups) {
			return nil
		}
		return err
	}
	for _, snap := range snaps[min(keep, len(snaps)):] {
		if err := os.Remove(snap.Path); err != nil {
			return errors.Wrapf(err, "removing backup %s", snap.ID)
		}
	}
	return nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
