package census

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/hexgrid"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
)

// IgnoredRegions are regions removed from every topology result.
var IgnoredRegions = []ps2.RegionID{
	18347, // Oshur Vast Expanse - a ring of hex tiles circling the entire map with no gameplay relevance
}

// MapHex is one hex tile row from the map_hex collection.
type MapHex struct {
	ZoneID      ps2.ZoneID   `json:"zone_id,string"`
	MapRegionID ps2.RegionID `json:"map_region_id,string"`
	X           int          `json:"x,string"`
	Y           int          `json:"y,string"`
	HexType     int          `json:"hex_type,string"`
	TypeName    string       `json:"type_name"`
}

// MapRegion is one row from the map_region collection.
type MapRegion struct {
	Facility
	MapRegionID ps2.RegionID `json:"map_region_id,string"`
	ZoneID      ps2.ZoneID   `json:"zone_id,string"`
	Name        localized    `json:"map_region_name"`
	LocationX   float64      `json:"location_x,string"`
	LocationY   float64      `json:"location_y,string"`
	LocationZ   float64      `json:"location_z,string"`
}

// Facility is the facility portion of a map_region row.
// Regions without a facility have a zero FacilityID.
type Facility struct {
	FacilityID     ps2.FacilityID     `json:"facility_id,string"`
	FacilityName   string             `json:"facility_name"`
	FacilityTypeID ps2.FacilityTypeID `json:"facility_type_id,string"`
	FacilityType   string             `json:"facility_type"`
}

// FacilityLink is one row from the facility_link collection.
type FacilityLink struct {
	ZoneID      ps2.ZoneID     `json:"zone_id,string"`
	FacilityIDA ps2.FacilityID `json:"facility_id_a,string"`
	FacilityIDB ps2.FacilityID `json:"facility_id_b,string"`
}

type localized struct {
	En string `json:"en"`
}

type zoneResult struct {
	ZoneID  ps2.ZoneID     `json:"zone_id,string"`
	Code    string         `json:"code"`
	HexSize int            `json:"hex_size,string"`
	Name    localized      `json:"name"`
	Regions []regionResult `json:"regions"`
	Links   []FacilityLink `json:"links"`
}

type regionResult struct {
	MapRegion
	Hexes []MapHex `json:"hexes"`
}

type censusZoneResult struct {
	ZoneList []zoneResult `json:"zone_list"`
	Returned int          `json:"returned"`
}

// mapSize returns the world-space dimensions of a zone's map square.
func mapSize(z ps2.ZoneID) int {
	switch z {
	case ps2.Indar, ps2.Hossin, ps2.Amerish, ps2.Esamir, ps2.Oshur, ps2.Desolation:
		return 8192
	case ps2.Nexus, ps2.Koltyr:
		return 4096
	default:
		return 8192
	}
}

// LoadZone fetches the static topology of a continent and builds the
// zone model for it: regions with their hex footprints,
// facility metadata, and the lattice links.
//
// Regions without a facility are dropped;
// the map service reports them but they take no part in gameplay.
func LoadZone(ctx context.Context, client *Client, env ps2.Environment, zoneID ps2.ZoneID) (*lattice.Zone, error) {
	res := censusZoneResult{}
	query := fmt.Sprintf(
		"zone?zone_id=%d"+
			"&c:join=map_region^list:1^inject_at:regions^hide:zone_id(map_hex^list:1^inject_at:hexes^hide:zone_id'map_region_id)"+
			"&c:join=facility_link^list:1^inject_at:links^hide:zone_id'description"+
			"&c:lang=en",
		zoneID,
	)
	if err := client.Get(ctx, env, query, &res); err != nil {
		return nil, fmt.Errorf("census.LoadZone: %w", err)
	}
	if len(res.ZoneList) == 0 {
		return nil, fmt.Errorf("census.LoadZone: zone %v: %w", zoneID, ErrNoResults)
	}
	return buildZone(res.ZoneList[0]), nil
}

func buildZone(z zoneResult) *lattice.Zone {
	regions := make([]lattice.Region, 0, len(z.Regions))
	for _, r := range z.Regions {
		if slices.Contains(IgnoredRegions, r.MapRegionID) {
			continue
		}
		if r.FacilityID == 0 {
			slog.Debug("skipping region without facility", "region", r.MapRegionID)
			continue
		}
		hexes := make([]hexgrid.Hex, 0, len(r.Hexes))
		for _, h := range r.Hexes {
			hexes = append(hexes, hexgrid.Hex{X: h.X, Y: h.Y})
		}
		regions = append(regions, lattice.Region{
			ID:           r.MapRegionID,
			FacilityID:   r.FacilityID,
			FacilityType: r.FacilityTypeID,
			Name:         r.FacilityName,
			// census location axes don't match the map image axes
			FacilityX: r.LocationZ,
			FacilityY: r.LocationX * -1,
			Hexes:     hexes,
		})
	}

	links := make([]lattice.Link, 0, len(z.Links))
	for _, l := range z.Links {
		links = append(links, lattice.Link{A: l.FacilityIDA, B: l.FacilityIDB})
	}

	name := z.Name.En
	if name == "" {
		name = z.Code
	}
	return lattice.NewZone(z.ZoneID, name, z.HexSize, mapSize(z.ZoneID), regions, links)
}

// GetSnapshot fetches the current territory ownership of one or more
// zones on a world. The map endpoint reports ownership per region.
func GetSnapshot(ctx context.Context, client *Client, world ps2.WorldID, zones ...ps2.ZoneInstanceID) ([]lattice.Snapshot, error) {
	ids := make([]string, 0, len(zones))
	for _, z := range zones {
		ids = append(ids, z.String())
	}
	query := "map?world_id=" + world.StringID() + "&zone_ids=" + strings.Join(ids, ",")
	var response struct {
		MapList []struct {
			ZoneID  ps2.ZoneInstanceID `json:"ZoneId,string"`
			Regions struct {
				Row []struct {
					RowData struct {
						RegionID  ps2.RegionID  `json:"RegionId,string"`
						FactionID ps2.FactionID `json:"FactionId,string"`
					} `json:"RowData"`
				} `json:"Row"`
			} `json:"Regions"`
		} `json:"map_list"`
		Returned int `json:"returned"`
	}
	if err := client.Get(ctx, ps2.GetEnvironment(world), query, &response); err != nil {
		return nil, fmt.Errorf("census.GetSnapshot: %w", err)
	}
	if len(response.MapList) == 0 {
		return nil, fmt.Errorf("census.GetSnapshot: world %v: %w", world, ErrNoResults)
	}

	snaps := make([]lattice.Snapshot, 0, len(response.MapList))
	now := time.Now()
	for _, m := range response.MapList {
		snap := lattice.Snapshot{
			ZoneID:    m.ZoneID.ZoneID(),
			Owners:    make(map[ps2.RegionID]ps2.FactionID, len(m.Regions.Row)),
			Timestamp: now,
		}
		for _, row := range m.Regions.Row {
			snap.Owners[row.RowData.RegionID] = row.RowData.FactionID
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Load fetches a continent's topology and its current ownership on a
// world concurrently and returns both.
func Load(ctx context.Context, client *Client, world ps2.WorldID, zoneID ps2.ZoneID) (*lattice.Zone, lattice.Snapshot, error) {
	var (
		zone *lattice.Zone
		snap lattice.Snapshot
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		zone, err = LoadZone(ctx, client, ps2.GetEnvironment(world), zoneID)
		return err
	})
	g.Go(func() error {
		snaps, err := GetSnapshot(ctx, client, world, ps2.ZoneInstanceID(zoneID))
		if err != nil {
			return err
		}
		snap = snaps[0]
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, lattice.Snapshot{}, err
	}
	return zone, snap, nil
}
