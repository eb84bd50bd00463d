// Package lattice models continent topology and derives tactical state
// from territory ownership snapshots.
//
// A [Zone] is the static shape of a continent: regions, the lattice
// links between their facilities, and precomputed adjacency.
// A [Snapshot] is a point-in-time record of who owns each region.
// [BuildGraph] combines the two into an ephemeral [Graph] that the
// connectivity queries and the tactical classifier run against.
package lattice

import (
	"log/slog"
	"slices"
	"time"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/hexgrid"
)

// Region is one map region of a continent.
// Values are immutable once the zone is built.
type Region struct {
	ID           ps2.RegionID
	FacilityID   ps2.FacilityID
	FacilityType ps2.FacilityTypeID
	Name         string

	// FacilityX, FacilityY locate the facility in world coordinates.
	FacilityX float64
	FacilityY float64

	// Hexes is the tile footprint of the region.
	Hexes []hexgrid.Hex
}

// Link is a lattice connection between two facilities as reported by
// the game data. Links are bidirectional; A and B carry no meaning.
type Link struct {
	A, B ps2.FacilityID
}

// LinkKey identifies a lattice connection by its endpoint regions.
// The smaller region ID is always A,
// so both directions of the same link produce equal keys.
type LinkKey struct {
	A, B ps2.RegionID
}

// MakeLinkKey returns the canonical key for a region pair.
func MakeLinkKey(a, b ps2.RegionID) LinkKey {
	if b < a {
		a, b = b, a
	}
	return LinkKey{A: a, B: b}
}

// Zone is the static topology of one continent.
// Build it once with [NewZone] when a continent is selected;
// it is never mutated afterward.
type Zone struct {
	ID      ps2.ZoneID
	Name    string
	HexSize int

	// Size is the full map dimension in world units (8192 for the main
	// continents). Used by renderers to place the origin.
	Size int

	Regions map[ps2.RegionID]Region

	links          []Link
	adjacency      map[ps2.RegionID][]ps2.RegionID
	byFacility     map[ps2.FacilityID]ps2.RegionID
	byFacilityType map[ps2.FacilityTypeID][]ps2.RegionID
}

// NewZone assembles a zone from raw region and link lists.
//
// Census data can reference facilities that don't exist;
// links with an unresolvable endpoint are dropped with a warning
// rather than failing the whole zone.
func NewZone(id ps2.ZoneID, name string, hexSize, size int, regions []Region, links []Link) *Zone {
	z := &Zone{
		ID:             id,
		Name:           name,
		HexSize:        hexSize,
		Size:           size,
		Regions:        make(map[ps2.RegionID]Region, len(regions)),
		adjacency:      make(map[ps2.RegionID][]ps2.RegionID, len(regions)),
		byFacility:     make(map[ps2.FacilityID]ps2.RegionID, len(regions)),
		byFacilityType: make(map[ps2.FacilityTypeID][]ps2.RegionID),
	}
	for _, r := range regions {
		z.Regions[r.ID] = r
		if r.FacilityID != 0 {
			z.byFacility[r.FacilityID] = r.ID
		}
		z.byFacilityType[r.FacilityType] = append(z.byFacilityType[r.FacilityType], r.ID)
	}
	for _, t := range z.byFacilityType {
		slices.Sort(t)
	}

	seen := make(map[LinkKey]bool, len(links))
	for _, l := range links {
		ra, okA := z.byFacility[l.A]
		rb, okB := z.byFacility[l.B]
		if !okA || !okB {
			slog.Warn("facility link references a facility missing from the zone; link dropped",
				"zone", id, "facility_a", l.A, "facility_b", l.B)
			continue
		}
		key := MakeLinkKey(ra, rb)
		if seen[key] {
			continue
		}
		seen[key] = true
		z.links = append(z.links, l)
		z.adjacency[ra] = append(z.adjacency[ra], rb)
		z.adjacency[rb] = append(z.adjacency[rb], ra)
	}
	for _, n := range z.adjacency {
		slices.Sort(n)
	}
	return z
}

// Neighbors returns the regions connected to id by a lattice link.
// The result is owned by the zone and must not be modified.
func (z *Zone) Neighbors(id ps2.RegionID) []ps2.RegionID {
	return z.adjacency[id]
}

// Links returns the validated lattice links of the zone.
func (z *Zone) Links() []Link {
	return z.links
}

// RegionForFacility resolves a facility ID to its region.
func (z *Zone) RegionForFacility(f ps2.FacilityID) (ps2.RegionID, bool) {
	id, ok := z.byFacility[f]
	return id, ok
}

// RegionsByType returns the regions whose facility has the given type,
// sorted by region ID.
func (z *Zone) RegionsByType(t ps2.FacilityTypeID) []ps2.RegionID {
	return z.byFacilityType[t]
}

// Warpgates returns the warpgate regions of the zone.
func (z *Zone) Warpgates() []ps2.RegionID {
	return z.RegionsByType(ps2.Warpgate)
}

// Snapshot is a point-in-time record of region ownership for a zone.
// Snapshots are replaced wholesale on refresh, never patched in place.
type Snapshot struct {
	ZoneID    ps2.ZoneID
	Owners    map[ps2.RegionID]ps2.FactionID
	Timestamp time.Time
}

// Owner returns the faction controlling a region,
// or [ps2.None] when the snapshot has no entry for it.
func (s Snapshot) Owner(id ps2.RegionID) ps2.FactionID {
	return s.Owners[id]
}
