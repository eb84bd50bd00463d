// Package event defines the realtime event types delivered by the
// planetside push service that affect territory ownership.
package event

import (
	"time"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
)

// Typer is implemented by every decoded event.
type Typer interface {
	Type() ps2.Event
}

// Raw is the wire shape of an event payload.
// The push service represents every value as a quoted string.
// Only the fields used by the subscribed event types are decoded.
type Raw struct {
	EventName         ps2.Event          `json:"event_name"`
	Timestamp         int64              `json:"timestamp,string"`
	WorldId           ps2.WorldID        `json:"world_id,string"`
	ZoneId            ps2.ZoneInstanceID `json:"zone_id,string"`
	FacilityId        ps2.FacilityID     `json:"facility_id,string"`
	NewFactionId      ps2.FactionID      `json:"new_faction_id,string"`
	OldFactionId      ps2.FactionID      `json:"old_faction_id,string"`
	DurationHeld      int64              `json:"duration_held,string"`
	TriggeringFaction ps2.FactionID      `json:"triggering_faction,string"`
	PreviousFaction   ps2.FactionID      `json:"previous_faction,string"`
	MetagameEventId   int                `json:"metagame_event_id,string"`
	FactionNc         float64            `json:"faction_nc,string"`
	FactionTr         float64            `json:"faction_tr,string"`
	FactionVs         float64            `json:"faction_vs,string"`
}

var handlers = map[ps2.Event]func(Raw) Typer{
	ps2.FacilityControl: func(r Raw) Typer {
		return FacilityControl{
			DurationHeld: time.Duration(r.DurationHeld) * time.Second,
			FacilityID:   r.FacilityId,
			NewFactionID: r.NewFactionId,
			OldFactionID: r.OldFactionId,
			Timestamp:    time.Unix(r.Timestamp, 0).UTC(),
			WorldID:      r.WorldId,
			ZoneID:       r.ZoneId,
		}
	},
	ps2.ContinentLock: func(r Raw) Typer {
		return ContinentLock{
			Timestamp:         time.Unix(r.Timestamp, 0).UTC(),
			WorldID:           r.WorldId,
			ZoneID:            r.ZoneId,
			TriggeringFaction: r.TriggeringFaction,
			PreviousFaction:   r.PreviousFaction,
		}
	},
	ps2.Metagame: func(r Raw) Typer {
		return MetagameEvent{
			Timestamp:       time.Unix(r.Timestamp, 0).UTC(),
			WorldID:         r.WorldId,
			ZoneID:          r.ZoneId,
			MetagameEventID: r.MetagameEventId,
			TerritoryVS:     r.FactionVs,
			TerritoryNC:     r.FactionNc,
			TerritoryTR:     r.FactionTr,
		}
	},
}

// Event converts a raw payload into its typed event,
// or nil for event types this package doesn't handle.
func (r Raw) Event() Typer {
	h, ok := handlers[r.EventName]
	if !ok {
		return nil
	}
	return h(r)
}

// FacilityControl fires when a facility changes hands,
// including continent unlocks where every facility resets at once.
type FacilityControl struct {
	DurationHeld time.Duration
	FacilityID   ps2.FacilityID
	NewFactionID ps2.FactionID
	OldFactionID ps2.FactionID
	Timestamp    time.Time
	WorldID      ps2.WorldID
	ZoneID       ps2.ZoneInstanceID
}

func (FacilityControl) Type() ps2.Event { return ps2.FacilityControl }

// IsDefense reports whether the event was a successful defense rather
// than a capture.
func (e FacilityControl) IsDefense() bool {
	return e.NewFactionID == e.OldFactionID
}

type ContinentLock struct {
	Timestamp         time.Time
	WorldID           ps2.WorldID
	ZoneID            ps2.ZoneInstanceID
	TriggeringFaction ps2.FactionID
	PreviousFaction   ps2.FactionID
}

func (ContinentLock) Type() ps2.Event { return ps2.ContinentLock }

type MetagameEvent struct {
	Timestamp       time.Time
	WorldID         ps2.WorldID
	ZoneID          ps2.ZoneInstanceID
	MetagameEventID int

	// Territory percentages as reported by the event stream.
	TerritoryVS float64
	TerritoryNC float64
	TerritoryTR float64
}

func (MetagameEvent) Type() ps2.Event { return ps2.Metagame }
