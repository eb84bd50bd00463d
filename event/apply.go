package event

import (
	"maps"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
)

// ApplyControl folds a facility capture into an ownership snapshot,
// returning a new snapshot with the affected region reassigned.
// The input snapshot is not modified.
//
// Events for facilities outside the zone topology,
// or for a different zone,
// return the input unchanged with ok false.
func ApplyControl(zone *lattice.Zone, snap lattice.Snapshot, e FacilityControl) (updated lattice.Snapshot, ok bool) {
	if e.ZoneID.ZoneID() != zone.ID {
		return snap, false
	}
	region, found := zone.RegionForFacility(e.FacilityID)
	if !found {
		return snap, false
	}
	updated = lattice.Snapshot{
		ZoneID:    snap.ZoneID,
		Owners:    maps.Clone(snap.Owners),
		Timestamp: e.Timestamp,
	}
	if updated.Owners == nil {
		updated.Owners = make(map[ps2.RegionID]ps2.FactionID)
	}
	updated.Owners[region] = e.NewFactionID
	return updated, true
}
