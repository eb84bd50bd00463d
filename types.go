// Package ps2 defines the identifier types and game constants shared by
// the territory analysis packages.
package ps2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RegionID identifies a map region on a continent.
// Every region covers a set of hex tiles and usually contains one facility.
type RegionID int

func (id RegionID) String() string { return strconv.Itoa(int(id)) }

// FacilityID identifies a capturable facility.
// Lattice links connect facilities, not regions.
type FacilityID int

func (id FacilityID) String() string { return strconv.Itoa(int(id)) }

// FactionID is one of the game's factions.
// The zero value means no faction owns the territory.
type FactionID uint8

func (f FactionID) String() string {
	switch f {
	case None:
		return "None"
	case VS:
		return "VS"
	case NC:
		return "NC"
	case TR:
		return "TR"
	case NSO:
		return "NSO"
	default:
		return "Undefined"
	}
}

func (f FactionID) GoString() string {
	switch f {
	case None:
		return "ps2.None"
	case VS:
		return "ps2.VS"
	case NC:
		return "ps2.NC"
	case TR:
		return "ps2.TR"
	case NSO:
		return "ps2.NSO"
	default:
		return fmt.Sprintf("ps2.FactionID(%d)", int(f))
	}
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Census represents faction IDs as quoted strings in some collections
// and bare numbers in others; both forms are accepted here.
// FactionID is used as an array index in a few places,
// so out of range values are rejected here instead of panicking later.
func (f *FactionID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	var i uint8
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("ps2.FactionID.UnmarshalJSON: %w", err)
	}
	if i > uint8(NSO) {
		return fmt.Errorf("ps2.FactionID.UnmarshalJSON: value '%d' is out of range for FactionID", i)
	}
	*f = FactionID(i)
	return nil
}

func (f FactionID) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", f.String())), nil
}

// FacilityTypeID is the category of a facility (warpgate, biolab, small outpost, ...).
type FacilityTypeID int

func (t FacilityTypeID) String() string {
	switch t {
	case DefaultFacility:
		return "DefaultFacility"
	case AmpStation:
		return "AmpStation"
	case Biolab:
		return "Biolab"
	case Techplant:
		return "Techplant"
	case LargeOutpost:
		return "LargeOutpost"
	case SmallOutpost:
		return "SmallOutpost"
	case Warpgate:
		return "Warpgate"
	case Interlink:
		return "Interlink"
	case ConstructionOutpost:
		return "ConstructionOutpost"
	case RelicOutpost:
		return "RelicOutpost"
	case ContainmentSite:
		return "ContainmentSite"
	case Trident:
		return "Trident"
	case Seapost:
		return "Seapost"
	default:
		return strconv.Itoa(int(t))
	}
}

// ZoneID is the ID planetside uses internally for a zone (continent).
type ZoneID uint16

func (z ZoneID) String() string { return strconv.Itoa(int(z)) }

// StringID returns the zone ID formatted for census query strings.
func (z ZoneID) StringID() string { return strconv.Itoa(int(z)) }

// WorldID is the ID for a server like Emerald, Cobalt, etc.
type WorldID uint16

// StringID returns the world ID formatted for census query strings.
func (w WorldID) StringID() string { return strconv.Itoa(int(w)) }

// ZoneInstanceID represents a (possibly) instanced zone ID as it
// appears in realtime events.
// The low 16 bits are the ZoneID and the high bits are an instance counter.
type ZoneInstanceID uint32

func (id ZoneInstanceID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id ZoneInstanceID) ZoneID() ZoneID { return ZoneID(id & 0x0000FFFF) }

// Instance is an incrementing counter to differentiate zones with
// multiple instanced copies running.
func (id ZoneInstanceID) Instance() uint16  { return uint16(uint(id&0xFFFF0000) >> 16) }
func (id ZoneInstanceID) IsInstanced() bool { return id.Instance() != 0 }

// Environment represents a game server production environment.
//
// Values are PC, Playstation 4 (US), and Playstation 4 (EU).
// The default is PC for newly initialized structs.
type Environment uint8

func (e Environment) String() string {
	switch e {
	case PC:
		return "ps2"
	case PS4US:
		return "ps2ps4us"
	case PS4EU:
		return "ps2ps4eu"
	default:
		return ""
	}
}

// Event is a realtime event type name on the push service.
type Event uint8

const (
	UnknownEvent Event = iota
	ContinentLock
	FacilityControl
	Metagame
)

var events = map[Event]string{
	ContinentLock:   "ContinentLock",
	FacilityControl: "FacilityControl",
	Metagame:        "MetagameEvent",
}

func (e Event) EventName() string { return e.String() }

func (e Event) String() string { return events[e] }

func (e *Event) UnmarshalJSON(data []byte) error {
	name := string(data)
	if len(name) >= 2 && name[0] == '"' {
		name = name[1 : len(name)-1]
	}
	for ev, s := range events {
		if name == s {
			*e = ev
			return nil
		}
	}
	// event types we never subscribe to are not an error
	*e = UnknownEvent
	return nil
}

func (e Event) MarshalJSON() ([]byte, error) {
	return []byte("\"" + e.String() + "\""), nil
}
