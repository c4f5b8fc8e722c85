// Package referencelist loads sanctions and PEP watchlists from YAML and
// keeps them current while the service runs.
package referencelist

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/bibbank/kyb-service/internal/domain/valueobject"
)

//go:embed default_lists.yaml
var defaultLists []byte

type fileEntry struct {
	Name     string `yaml:"name"`
	List     string `yaml:"list"`
	Position string `yaml:"position"`
	Country  string `yaml:"country"`
}

type fileFormat struct {
	Sanctions []fileEntry `yaml:"sanctions"`
	PEP       []fileEntry `yaml:"pep"`
}

type snapshot struct {
	sanctions []valueobject.ReferenceEntry
	pep       []valueobject.ReferenceEntry
}

// Lists is a service.ReferenceListSource whose contents can be swapped at
// runtime. Readers always see a complete snapshot.
type Lists struct {
	mu       sync.RWMutex
	current  snapshot
	path     string
	logger   *slog.Logger
	onChange []func(sanctions, pep int)
}

// NewDefault returns the built-in demonstration lists.
func NewDefault(logger *slog.Logger) (*Lists, error) {
	snap, err := parse(defaultLists)
	if err != nil {
		return nil, fmt.Errorf("parse default reference lists: %w", err)
	}
	return &Lists{current: snap, logger: logger}, nil
}

// Load reads the lists from a YAML file. An empty path falls back to the
// built-in lists.
func Load(path string, logger *slog.Logger) (*Lists, error) {
	if path == "" {
		return NewDefault(logger)
	}
	l := &Lists{path: path, logger: logger}
	snap, err := l.read()
	if err != nil {
		return nil, err
	}
	l.current = snap
	return l, nil
}

// Entries returns the current entries for one list.
func (l *Lists) Entries(listType valueobject.ScreeningType) []valueobject.ReferenceEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	switch listType {
	case valueobject.ScreeningTypeSanctions:
		return l.current.sanctions
	case valueobject.ScreeningTypePEP:
		return l.current.pep
	default:
		return nil
	}
}

// Counts reports the size of each list.
func (l *Lists) Counts() (sanctions, pep int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.current.sanctions), len(l.current.pep)
}

// OnChange registers a callback invoked after every successful reload.
func (l *Lists) OnChange(fn func(sanctions, pep int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Reload re-reads the file. On error the previous lists stay in place.
func (l *Lists) Reload() error {
	if l.path == "" {
		return nil
	}
	snap, err := l.read()
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.current = snap
	callbacks := make([]func(int, int), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()

	l.logger.Info("reference lists reloaded",
		slog.String("path", l.path),
		slog.Int("sanctions", len(snap.sanctions)),
		slog.Int("pep", len(snap.pep)),
	)
	for _, fn := range callbacks {
		fn(len(snap.sanctions), len(snap.pep))
	}
	return nil
}

// Watch hot-reloads the lists whenever the file changes. The directory is
// watched rather than the file so atomic renames by editors and config
// management are picked up. Call the returned stop function to clean up.
func (l *Lists) Watch() (stop func(), err error) {
	if l.path == "" {
		return func() {}, nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("reference list watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(l.path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("reference list watcher add %s: %w", l.path, err)
	}

	target := filepath.Clean(l.path)
	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					if err := l.Reload(); err != nil {
						l.logger.Warn("reference list reload failed, keeping previous lists",
							slog.String("path", l.path),
							slog.String("error", err.Error()),
						)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn("reference list watcher error", slog.String("error", err.Error()))
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

func (l *Lists) read() (snapshot, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return snapshot{}, fmt.Errorf("read reference lists %s: %w", l.path, err)
	}
	snap, err := parse(data)
	if err != nil {
		return snapshot{}, fmt.Errorf("parse reference lists %s: %w", l.path, err)
	}
	return snap, nil
}

func parse(data []byte) (snapshot, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return snapshot{}, err
	}
	sanctions, err := toEntries(f.Sanctions)
	if err != nil {
		return snapshot{}, fmt.Errorf("sanctions: %w", err)
	}
	pep, err := toEntries(f.PEP)
	if err != nil {
		return snapshot{}, fmt.Errorf("pep: %w", err)
	}
	return snapshot{sanctions: sanctions, pep: pep}, nil
}

func toEntries(in []fileEntry) ([]valueobject.ReferenceEntry, error) {
	out := make([]valueobject.ReferenceEntry, 0, len(in))
	for i, e := range in {
		entry, err := valueobject.NewReferenceEntry(e.Name, e.List, e.Position, e.Country)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, entry)
	}
	return out, nil
}
