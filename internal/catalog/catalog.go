// Package catalog holds the in-memory target catalog: bright stars and the
// Messier objects. A Repository is owned by its caller; nothing here is
// global mutable state.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/litescript/starward/internal/astro"
)

// Kind classifies a catalog object.
type Kind int

const (
	KindStar Kind = iota
	KindGalaxy
	KindGlobularCluster
	KindOpenCluster
	KindNebula
	KindPlanetaryNebula
	KindSupernovaRemnant
	KindOther // asterisms, star clouds, double stars
)

var kindNames = [...]string{
	"star", "galaxy", "globular cluster", "open cluster",
	"nebula", "planetary nebula", "supernova remnant", "other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind name. Short forms "gc", "oc", "pn" and "snr" are
// accepted.
func ParseKind(name string) (Kind, error) {
	switch key(name) {
	case "star":
		return KindStar, nil
	case "galaxy", "gal":
		return KindGalaxy, nil
	case "globularcluster", "globular", "gc":
		return KindGlobularCluster, nil
	case "opencluster", "open", "oc":
		return KindOpenCluster, nil
	case "nebula", "neb":
		return KindNebula, nil
	case "planetarynebula", "planetary", "pn":
		return KindPlanetaryNebula, nil
	case "supernovaremnant", "snr":
		return KindSupernovaRemnant, nil
	case "other":
		return KindOther, nil
	}
	return 0, fmt.Errorf("unknown object kind %q", name)
}

// Object is one catalog entry. Positions are J2000.
type Object struct {
	ID            string   // "M31", or the proper name for stars
	Name          string   // common name, may be empty
	Designation   string   // Bayer or Flamsteed designation for stars
	Aliases       []string // other names that Lookup accepts
	Kind          Kind
	Constellation string  // IAU abbreviation
	RAHours       float64 // right ascension, hours
	DecDeg        float64 // declination, degrees
	Mag           float64 // apparent visual magnitude
}

// Coord returns the object's position for the astro core.
func (o Object) Coord() astro.ICRSCoord {
	return astro.ICRSCoord{RA: astro.Hours(o.RAHours), Dec: astro.Degrees(o.DecDeg)}
}

// Label returns "M31 Andromeda Galaxy" or just the ID when there is no
// separate common name.
func (o Object) Label() string {
	if o.Name == "" || o.Name == o.ID {
		return o.ID
	}
	return o.ID + " " + o.Name
}

// Repository is a searchable set of objects.
type Repository struct {
	objects []Object
	index   map[string]int
}

// New builds a repository from object lists. Later duplicates of a key
// do not replace earlier entries.
func New(lists ...[]Object) *Repository {
	r := &Repository{index: make(map[string]int)}
	for _, list := range lists {
		for _, o := range list {
			r.add(o)
		}
	}
	return r
}

// Default returns a repository of the bright stars and all Messier objects.
func Default() *Repository {
	return New(BrightStars(), Messier())
}

func (r *Repository) add(o Object) {
	i := len(r.objects)
	r.objects = append(r.objects, o)
	for _, k := range append([]string{o.ID, o.Name, o.Designation}, o.Aliases...) {
		if k = key(k); k == "" {
			continue
		}
		if _, dup := r.index[k]; !dup {
			r.index[k] = i
		}
	}
}

// Len returns the number of objects.
func (r *Repository) Len() int { return len(r.objects) }

// All returns a copy of every object in catalog order.
func (r *Repository) All() []Object {
	out := make([]Object, len(r.objects))
	copy(out, r.objects)
	return out
}

// Lookup finds an object by ID, name, designation or alias. Case, spaces,
// dashes and underscores are ignored, so "m 31", "M31" and "andromeda
// galaxy" all match.
func (r *Repository) Lookup(name string) (Object, bool) {
	i, ok := r.index[key(name)]
	if !ok {
		return Object{}, false
	}
	return r.objects[i], true
}

// Search returns objects whose ID, name, designation, alias or
// constellation contains query, in catalog order.
func (r *Repository) Search(query string) []Object {
	q := key(query)
	if q == "" {
		return nil
	}
	var out []Object
	for _, o := range r.objects {
		for _, f := range append([]string{o.ID, o.Name, o.Designation, o.Constellation}, o.Aliases...) {
			if strings.Contains(key(f), q) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// Filter narrows a listing. Zero-value fields do not filter.
type Filter struct {
	Kinds         []Kind
	Constellation string
	MaxMag        *float64

	// Observer and MinAltitude keep objects that culminate at least
	// MinAltitude degrees above the observer's horizon.
	Observer    *astro.Observer
	MinAltitude float64
}

// Filter returns the matching objects sorted by magnitude, brightest first.
func (r *Repository) Filter(f Filter) []Object {
	var out []Object
	for _, o := range r.objects {
		if f.match(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mag < out[j].Mag })
	return out
}

func (f Filter) match(o Object) bool {
	if len(f.Kinds) > 0 {
		found := false
		for _, k := range f.Kinds {
			if o.Kind == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Constellation != "" && !strings.EqualFold(o.Constellation, f.Constellation) {
		return false
	}
	if f.MaxMag != nil && o.Mag > *f.MaxMag {
		return false
	}
	if f.Observer != nil && astro.TransitAltitude(o.Coord(), *f.Observer, nil).Degrees() < f.MinAltitude {
		return false
	}
	return true
}

// Coords returns the positions of objs in order, ready for
// astro.ObservableTonight.
func Coords(objs []Object) []astro.ICRSCoord {
	out := make([]astro.ICRSCoord, len(objs))
	for i, o := range objs {
		out[i] = o.Coord()
	}
	return out
}

// key lowercases s and drops spaces, dashes and underscores.
func key(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), r == '-', r == '_':
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
