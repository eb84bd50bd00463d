package ps2

const (
	None FactionID = iota
	VS
	NC
	TR
	NSO
)

const (
	DefaultFacility FacilityTypeID = iota + 1
	AmpStation
	Biolab
	Techplant
	LargeOutpost
	SmallOutpost
	Warpgate
	Interlink
	ConstructionOutpost
	RelicOutpost
	ContainmentSite
	Trident
	Seapost
)

const (
	Indar      ZoneID = 2
	Hossin     ZoneID = 4
	Amerish    ZoneID = 6
	Esamir     ZoneID = 8
	Nexus      ZoneID = 10
	Koltyr     ZoneID = 14
	Oshur      ZoneID = 344
	Desolation ZoneID = 361
)

const (
	Connery  WorldID = 1
	Miller   WorldID = 10
	Cobalt   WorldID = 13
	Emerald  WorldID = 17
	Jaeger   WorldID = 19
	SolTech  WorldID = 40
	Genudine WorldID = 1000
	Ceres    WorldID = 2000
)

const (
	PC Environment = iota
	PS4US
	PS4EU
)

// GetEnvironment returns the environment a world belongs to.
func GetEnvironment(w WorldID) Environment {
	switch w {
	case Ceres:
		return PS4EU
	case Genudine:
		return PS4US
	default:
		return PC
	}
}

// IsPermanentZone returns true for zones that are shown on the world map at all times.
func IsPermanentZone(z ZoneID) bool {
	switch z {
	case Amerish, Indar, Esamir, Hossin, Oshur:
		return true
	default:
		return false
	}
}
