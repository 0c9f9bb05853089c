// Package profile stores named observer locations in a TOML file.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/litescript/starward/internal/astro"
)

// FileName is the profile file inside the starward config directory.
const FileName = "observers.toml"

// ErrNoObserver is returned by Resolve when no profile matches.
var ErrNoObserver = errors.New("no observer profile")

// Entry is one observer as written to disk.
type Entry struct {
	Name      string  `toml:"name"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Elevation float64 `toml:"elevation"`
	Timezone  string  `toml:"timezone,omitempty"`
}

// Observer converts the entry, validating its latitude.
func (e Entry) Observer() (astro.Observer, error) {
	o, err := astro.NewObserver(e.Name, e.Latitude, e.Longitude, e.Elevation)
	if err != nil {
		return astro.Observer{}, err
	}
	o.Timezone = e.Timezone
	return o, nil
}

func entryFor(o astro.Observer) Entry {
	return Entry{
		Name:      o.Name,
		Latitude:  o.LatDeg(),
		Longitude: o.LonDeg(),
		Elevation: o.Elevation,
		Timezone:  o.Timezone,
	}
}

// File is the on-disk layout.
type File struct {
	Default   string           `toml:"default,omitempty"`
	Observers map[string]Entry `toml:"observers"`
}

// Store is an observer profile file held in memory. It is not safe for
// concurrent use.
type Store struct {
	path string
	file File
}

// DefaultPath returns ~/.starward/observers.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".starward", FileName), nil
}

// Key normalizes a profile name: lowercase, spaces become underscores.
func Key(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Load reads the profile file at path. A missing file is an empty store.
func Load(path string) (*Store, error) {
	s := &Store{path: path, file: File{Observers: make(map[string]Entry)}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading observer profiles: %w", err)
	}

	if err := toml.Unmarshal(data, &s.file); err != nil {
		return nil, fmt.Errorf("parsing observer profiles: %w", err)
	}
	if s.file.Observers == nil {
		s.file.Observers = make(map[string]Entry)
	}
	for key, e := range s.file.Observers {
		if e.Name == "" {
			e.Name = key
			s.file.Observers[key] = e
		}
		if _, err := e.Observer(); err != nil {
			return nil, fmt.Errorf("observer profile %q: %w", key, err)
		}
	}
	if _, ok := s.file.Observers[s.file.Default]; !ok {
		s.file.Default = s.firstKey()
	}
	return s, nil
}

// Save writes the store atomically (write temp + rename), creating the
// directory if needed.
func (s *Store) Save() error {
	data, err := toml.Marshal(s.file)
	if err != nil {
		return fmt.Errorf("marshaling observer profiles: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp profile file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming profile file: %w", err)
	}
	return nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Get returns the named observer.
func (s *Store) Get(name string) (astro.Observer, bool) {
	e, ok := s.file.Observers[Key(name)]
	if !ok {
		return astro.Observer{}, false
	}
	o, err := e.Observer()
	return o, err == nil
}

// Default returns the default observer, if any.
func (s *Store) Default() (astro.Observer, bool) {
	if s.file.Default == "" {
		return astro.Observer{}, false
	}
	return s.Get(s.file.Default)
}

// DefaultName returns the key of the default observer.
func (s *Store) DefaultName() string { return s.file.Default }

// Put adds or replaces an observer. The first observer stored becomes the
// default.
func (s *Store) Put(o astro.Observer) {
	k := Key(o.Name)
	s.file.Observers[k] = entryFor(o)
	if s.file.Default == "" {
		s.file.Default = k
	}
}

// Remove deletes an observer. If it was the default, the first remaining
// key takes over.
func (s *Store) Remove(name string) bool {
	k := Key(name)
	if _, ok := s.file.Observers[k]; !ok {
		return false
	}
	delete(s.file.Observers, k)
	if s.file.Default == k {
		s.file.Default = s.firstKey()
	}
	return true
}

// SetDefault marks an existing observer as the default.
func (s *Store) SetDefault(name string) bool {
	k := Key(name)
	if _, ok := s.file.Observers[k]; !ok {
		return false
	}
	s.file.Default = k
	return true
}

// Names returns the profile keys in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.file.Observers))
	for k := range s.file.Observers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Observers returns every profile, ordered by key.
func (s *Store) Observers() []astro.Observer {
	var out []astro.Observer
	for _, k := range s.Names() {
		if o, ok := s.Get(k); ok {
			out = append(out, o)
		}
	}
	return out
}

// Resolve returns the named observer, or the default when name is empty.
func (s *Store) Resolve(name string) (astro.Observer, error) {
	if name == "" {
		if o, ok := s.Default(); ok {
			return o, nil
		}
		return astro.Observer{}, fmt.Errorf("%w: none saved in %s", ErrNoObserver, s.path)
	}
	if o, ok := s.Get(name); ok {
		return o, nil
	}
	return astro.Observer{}, fmt.Errorf("%w named %q", ErrNoObserver, name)
}

func (s *Store) firstKey() string {
	if names := s.Names(); len(names) > 0 {
		return names[0]
	}
	return ""
}
