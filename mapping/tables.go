package mapping

// Road subclasses, most significant first.
const (
	RoadMotorway     = 1
	RoadTrunk        = 2
	RoadPrimary      = 3
	RoadSecondary    = 4
	RoadTertiary     = 5
	RoadUnclassified = 6
	RoadResidential  = 7
	RoadLivingStreet = 8
	RoadService      = 9
	RoadTrack        = 10
	RoadPath         = 11
	RoadCycleway     = 12
	RoadSteps        = 13
	RoadPedestrian   = 14
	RoadFootway      = 15

	// RoadBarrier is used for ways tagged with a known barrier.
	RoadBarrier = 12
)

const (
	RailRail        = 1
	RailSubway      = 2
	RailLightRail   = 3
	RailTram        = 4
	RailNarrowGauge = 5
)

const (
	BuildingHouse      = 1
	BuildingApartment  = 2
	BuildingPublic     = 3
	BuildingService    = 4
	BuildingHole       = 5
	BuildingIndustrial = 6
	BuildingGeneric    = 7
	BuildingCar        = 8
	BuildingMedical    = 9
	BuildingLearning   = 10
	BuildingReligious  = 11
	BuildingRuins      = 12
)

const (
	LanduseWood        = 1
	LanduseGrass       = 2
	LanduseBushes      = 3
	LanduseMixed       = 4
	LanduseResidential = 5
	LanduseIndustrial  = 6
)

const (
	NaturalWood  = 1
	NaturalGrass = 2
	NaturalInner = 3
	NaturalWater = 4
	NaturalWet   = 5
	NaturalTree  = 8
)

const (
	WaterRiver  = 1
	WaterStream = 2
)

// Point feature subclasses shared by the highway, railway, amenity and
// shop families.
const (
	PointCrossing      = 1
	PointStreetLamp    = 2
	PointTurningCircle = 6
	PointSignal        = 7
	PointStop          = 8

	PointFurniture     = 1
	PointParking       = 2
	PointShelter       = 4
	PointCarService    = 5
	PointCharging      = 6
	PointFood          = 1
	PointWorship       = 3
	PointMedical       = 5
	PointPostEducation = 6

	ShopVacant      = 1
	ShopPublicGoods = 1
	ShopClothes     = 2
	ShopCare        = 3
	ShopElectronics = 4

	BarrierGuardRail = 1
	BarrierGate      = 2
	BarrierBollard   = 3
)

func area(cat Category, sub uint8) Class {
	return Class{Category: cat, Subclass: sub, Flags: FlagArea}
}

func node(cat Category, sub uint8) Class {
	return Class{Category: cat, Subclass: sub, Flags: FlagNode}
}

func plain(cat Category, sub uint8) Class {
	return Class{Category: cat, Subclass: sub}
}

// roadPrefixes are matched with strings.HasPrefix after exact lookups
// failed, so that motorway_link and friends share the base subclass.
var roadPrefixes = []struct {
	prefix   string
	subclass uint8
}{
	{"motorway", RoadMotorway},
	{"trunk", RoadTrunk},
	{"primary", RoadPrimary},
	{"secondary", RoadSecondary},
	{"tertiary", RoadTertiary},
	{"unclassified", RoadUnclassified},
	{"residential", RoadResidential},
	{"living_street", RoadLivingStreet},
}

var genericBuilding = area(CategoryBuilding, BuildingGeneric)

func defaultTables() map[Family]Table {
	return map[Family]Table{
		Highway: {
			"service":      plain(CategoryRoad, RoadService),
			"escape":       plain(CategoryRoad, RoadService),
			"bus_guideway": plain(CategoryRoad, RoadService),
			"track":        plain(CategoryRoad, RoadTrack),
			"path":         plain(CategoryRoad, RoadPath),
			"bridleway":    plain(CategoryRoad, RoadPath),
			"footway":      plain(CategoryRoad, RoadFootway),
			"cycleway":     plain(CategoryRoad, RoadCycleway),
			"steps":        plain(CategoryRoad, RoadSteps),
			"pedestrian":   plain(CategoryRoad, RoadPedestrian),
		},
		Railway: {
			"rail":         plain(CategoryRail, RailRail),
			"subway":       plain(CategoryRail, RailSubway),
			"light_rail":   plain(CategoryRail, RailLightRail),
			"tram":         plain(CategoryRail, RailTram),
			"narrow_gauge": plain(CategoryRail, RailNarrowGauge),
		},
		Barrier: {
			"guard_rail": plain(CategoryNone, BarrierGuardRail),
			"gate":       node(CategoryNone, BarrierGate),
			"bollard":    node(CategoryNone, BarrierBollard),
			"entrance":   node(CategoryNone, BarrierGate),
		},
		Building: {
			"yes":                area(CategoryBuilding, BuildingHouse),
			"house":              area(CategoryBuilding, BuildingHouse),
			"bungalow":           area(CategoryBuilding, BuildingHouse),
			"terrace":            area(CategoryBuilding, BuildingHouse),
			"detached":           area(CategoryBuilding, BuildingHouse),
			"semidetached_house": area(CategoryBuilding, BuildingHouse),
			"farm":               area(CategoryBuilding, BuildingHouse),
			"farm_auxiliary":     area(CategoryBuilding, BuildingHouse),
			"barn":               area(CategoryBuilding, BuildingHouse),
			"cowshed":            area(CategoryBuilding, BuildingHouse),
			"stable":             area(CategoryBuilding, BuildingHouse),
			"allotment_house":    area(CategoryBuilding, BuildingHouse),
			"hut":                area(CategoryBuilding, BuildingHouse),
			"shed":               area(CategoryBuilding, BuildingHouse),
			"chalet":             area(CategoryBuilding, BuildingHouse),
			"residential":        area(CategoryBuilding, BuildingApartment),
			"apartments":         area(CategoryBuilding, BuildingApartment),
			"dormitory":          area(CategoryBuilding, BuildingApartment),
			"retail":             area(CategoryBuilding, BuildingPublic),
			"office":             area(CategoryBuilding, BuildingPublic),
			"commercial":         area(CategoryBuilding, BuildingPublic),
			"warehouse":          area(CategoryBuilding, BuildingPublic),
			"roof":               area(CategoryBuilding, BuildingPublic),
			"kiosk":              area(CategoryBuilding, BuildingPublic),
			"public":             area(CategoryBuilding, BuildingPublic),
			"civic":              area(CategoryBuilding, BuildingPublic),
			"hotel":              area(CategoryBuilding, BuildingPublic),
			"government":         area(CategoryBuilding, BuildingPublic),
			"museum":             area(CategoryBuilding, BuildingPublic),
			"sports_hall":        area(CategoryBuilding, BuildingPublic),
			"clinic":             area(CategoryBuilding, BuildingPublic),
			"bridge":             area(CategoryBuilding, BuildingService),
			"fire_station":       area(CategoryBuilding, BuildingService),
			"sports_centre":      area(CategoryBuilding, BuildingService),
			"guardhouse":         area(CategoryBuilding, BuildingService),
			"service":            area(CategoryBuilding, BuildingService),
			"water_tower":        area(CategoryBuilding, BuildingService),
			"industrial":         area(CategoryBuilding, BuildingIndustrial),
			"greenhouse":         area(CategoryBuilding, BuildingIndustrial),
			"garage":             area(CategoryBuilding, BuildingCar),
			"garages":            area(CategoryBuilding, BuildingCar),
			"carport":            area(CategoryBuilding, BuildingCar),
			"parking":            area(CategoryBuilding, BuildingCar),
			"hospital":           area(CategoryBuilding, BuildingMedical),
			"school":             area(CategoryBuilding, BuildingLearning),
			"kindergarten":       area(CategoryBuilding, BuildingLearning),
			"university":         area(CategoryBuilding, BuildingLearning),
			"church":             area(CategoryBuilding, BuildingReligious),
			"chapel":             area(CategoryBuilding, BuildingReligious),
			"ruins":              area(CategoryBuilding, BuildingRuins),
		},
		Landuse: {
			"forest":            area(CategoryLanduse, LanduseWood),
			"grass":             area(CategoryLanduse, LanduseGrass),
			"recreation_ground": area(CategoryLanduse, LanduseGrass),
			"meadow":            area(CategoryLanduse, LanduseGrass),
			"village_green":     area(CategoryLanduse, LanduseBushes),
			"farmland":          area(CategoryLanduse, LanduseBushes),
			"commercial":        area(CategoryLanduse, LanduseMixed),
			"residential":       area(CategoryLanduse, LanduseResidential),
			"construction":      area(CategoryLanduse, LanduseIndustrial),
		},
		Natural: {
			"wood":      area(CategoryNatural, NaturalWood),
			"grassland": area(CategoryNatural, NaturalGrass),
			"water":     area(CategoryNatural, NaturalWater),
			"shingle":   area(CategoryNatural, NaturalWet),
			"tree":      node(CategoryNatural, NaturalTree),
		},
		Waterway: {
			"river":  area(CategoryWater, WaterRiver),
			"stream": area(CategoryWater, WaterStream),
		},
		HighwayPoint: {
			"level_crossing":  node(CategoryRoad, PointCrossing),
			"crossing":        node(CategoryRoad, PointCrossing),
			"street_lamp":     plain(CategoryNone, PointStreetLamp),
			"traffic_signals": node(CategoryRoad, PointSignal),
			"bus_stop":        node(CategoryRoad, PointStop),
			"turning_circle":  node(CategoryRoad, PointTurningCircle),
		},
		RailwayPoint: {
			"milestone":           plain(CategoryNone, PointCrossing),
			"switch":              plain(CategoryNone, PointCrossing),
			"level_crossing":      plain(CategoryNone, PointCrossing),
			"crossing":            plain(CategoryNone, PointCrossing),
			"railway_crossing":    plain(CategoryNone, PointCrossing),
			"tram_crossing":       plain(CategoryNone, PointCrossing),
			"tram_level_crossing": plain(CategoryNone, PointCrossing),
			"buffer_stop":         plain(CategoryNone, PointCrossing),
			"stop":                node(CategoryRail, PointStop),
			"tram_stop":           node(CategoryRail, PointStop),
			"station":             node(CategoryRail, PointStop),
			"signal":              node(CategoryRail, PointSignal),
		},
		Amenity: {
			"bench":            plain(CategoryNone, PointFurniture),
			"waste_basket":     plain(CategoryNone, PointFurniture),
			"recycling":        plain(CategoryNone, PointFurniture),
			"fountain":         plain(CategoryNone, PointFurniture),
			"hunting_stand":    plain(CategoryNone, PointFurniture),
			"parking":          node(CategoryRoad, PointParking),
			"bicycle_parking":  node(CategoryRoad, PointParking),
			"parking_entrance": node(CategoryRoad, PointParking),
			"vending_machine":  node(CategoryRoad, PointParking),
			"shelter":          node(CategoryRoad, PointShelter),
			"fuel":             node(CategoryRoad, PointCarService),
			"taxi":             node(CategoryRoad, PointCarService),
			"charging_station": node(CategoryRoad, PointCharging),
			"restaurant":       node(CategoryPublic, PointFood),
			"cafe":             node(CategoryPublic, PointFood),
			"bar":              node(CategoryPublic, PointFood),
			"pub":              node(CategoryPublic, PointFood),
			"fast_food":        node(CategoryPublic, PointFood),
			"canteen":          node(CategoryPublic, PointFood),
			"doctors":          node(CategoryPublic, PointMedical),
			"veterinary":       node(CategoryPublic, PointMedical),
			"dentist":          node(CategoryPublic, PointMedical),
			"pharmacy":         node(CategoryPublic, PointMedical),
			"post_box":         node(CategoryPublic, PointPostEducation),
			"kindergarten":     node(CategoryPublic, PointPostEducation),
			"place_of_worship": node(CategoryPublic, PointWorship),
		},
		Shop: {
			"vacant":      plain(CategoryNone, ShopVacant),
			"kiosk":       node(CategoryPublic, ShopPublicGoods),
			"florist":     node(CategoryPublic, ShopPublicGoods),
			"supermarket": node(CategoryPublic, ShopClothes),
			"convenience": node(CategoryPublic, ShopClothes),
			"beverages":   node(CategoryPublic, ShopClothes),
			"wine":        node(CategoryPublic, ShopClothes),
			"bakery":      node(CategoryPublic, ShopClothes),
			"butcher":     node(CategoryPublic, ShopClothes),
			"clothes":     node(CategoryPublic, ShopClothes),
			"beauty":      node(CategoryPublic, ShopCare),
			"laundry":     node(CategoryPublic, ShopCare),
			"hairdresser": node(CategoryPublic, ShopCare),
			"electronics": node(CategoryPublic, ShopElectronics),
			"car_repair":  node(CategoryRoad, PointCarService),
		},
	}
}
