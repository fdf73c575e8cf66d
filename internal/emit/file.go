package emit

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/okra-platform/adaptergen/internal/codegen"
	"github.com/okra-platform/adaptergen/internal/errors"
)

// Status describes how a generated file relates to what is on disk.
type Status int

const (
	Unchanged Status = iota
	Created
	Updated
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Change records what a FileSink did with one unit.
type Change struct {
	Path   string
	Status Status
}

// FileSink writes each unit to Dir/key. Files whose content is already
// current are left untouched so their modification time does not change.
type FileSink struct {
	logger zerolog.Logger

	mu      sync.Mutex
	changes []Change
	seen    map[string]bool
}

func NewFileSink(logger zerolog.Logger) *FileSink {
	return &FileSink{
		logger: logger,
		seen:   make(map[string]bool),
	}
}

func (s *FileSink) AddGeneratedUnit(key string, unit *codegen.Unit) error {
	if unit == nil {
		return errors.Newf("nil unit for %s", key)
	}
	if unit.Dir == "" {
		return errors.Newf("no output directory for %s", unit.DeclarationName)
	}
	target := filepath.Join(unit.Dir, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[target] {
		return errors.Wrapf(ErrDuplicateUnit, "%s", target)
	}
	s.seen[target] = true

	status, err := writeIfChanged(target, unit.Source)
	if err != nil {
		return err
	}
	s.changes = append(s.changes, Change{Path: target, Status: status})

	s.logger.Debug().
		Str("file", target).
		Str("declaration", unit.DeclarationName).
		Str("status", status.String()).
		Msg("generated unit")
	return nil
}

// Changes returns what happened to every unit, in the order received.
func (s *FileSink) Changes() []Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Change(nil), s.changes...)
}

func writeIfChanged(target string, src []byte) (Status, error) {
	status := Created
	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		if bytes.Equal(existing, src) {
			return Unchanged, nil
		}
		status = Updated
	case !os.IsNotExist(err):
		return Unchanged, errors.Wrapf(err, "failed to read %s", target)
	}

	// write through a temp file so a failed write never leaves a truncated
	// generated file behind
	tmp, err := os.CreateTemp(filepath.Dir(target), ".adaptergen-*")
	if err != nil {
		return Unchanged, errors.Wrapf(err, "failed to create temp file for %s", target)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		return Unchanged, errors.Wrapf(err, "failed to write %s", target)
	}
	if err := tmp.Close(); err != nil {
		return Unchanged, errors.Wrapf(err, "failed to write %s", target)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return Unchanged, errors.Wrapf(err, "failed to write %s", target)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return Unchanged, errors.Wrapf(err, "failed to write %s", target)
	}
	return status, nil
}
