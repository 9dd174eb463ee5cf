package pricing

import "paintbuddy/internal/domain/entities"

// Range is a {min,max} pair used for anchors, base costs, rates and
// multiplier pairs throughout the tables.
type Range struct {
	Min float64
	Max float64
}

// All rates are AUD. The tables are data on purpose: each business rule
// (room mix, area selection, exterior risk, condition, difficulty) is
// tunable on its own without touching the formula.

// Interior baseline job.
var interiorAnchor = Range{Min: 2500, Max: 8000}

// Per-room weights reflect relative paintable surface and complexity.
// Rooms outside the vocabulary get defaultRoomWeight instead of failing.
var roomWeights = map[string]float64{
	"Kitchen":    1.5,
	"Livingroom": 1.4,
	"Lounge":     1.2,
	"Bedroom 1":  1.0,
	"Bedroom 2":  1.0,
	"Bedroom 3":  1.0,
	"Bathroom":   0.9,
	"Laundry":    0.6,
}

const (
	defaultRoomWeight = 0.7
	baselineRoomScore = 2.5
	minRoomFactor     = 0.6
	maxRoomFactor     = 2.5
)

// Shares of the interior anchor attributable to each paintable surface.
// They sum to 1.0 when everything is selected. Selecting nothing floors the
// factor at 1.0 so a submission can never price to zero.
const (
	ceilingShare = 0.25
	wallShare    = 0.55
	trimShare    = 0.20
)

// Exterior per-item base cost ranges, before risk and size adjustments.
var exteriorBaseCosts = map[entities.ExteriorArea]Range{
	entities.ExteriorWall:     {Min: 2000, Max: 5500},
	entities.ExteriorEaves:    {Min: 600, Max: 1500},
	entities.ExteriorGutter:   {Min: 500, Max: 1200},
	entities.ExteriorFascia:   {Min: 500, Max: 1300},
	entities.ExteriorTrimArea: {Min: 400, Max: 1100},
}

// Height, weather and access risk applied to every exterior job.
var exteriorRiskMultiplier = Range{Min: 1.10, Max: 1.35}

// Ordered, non-overlapping size bands in square metres. A missing or
// out-of-range size falls through to the last band as the conservative
// default.
type sizeBand struct {
	UpTo  float64 // inclusive upper bound in sqm
	Mults Range
}

var exteriorSizeBands = []sizeBand{
	{UpTo: 80, Mults: Range{Min: 0.80, Max: 0.90}},
	{UpTo: 160, Mults: Range{Min: 1.00, Max: 1.10}},
	{UpTo: 250, Mults: Range{Min: 1.15, Max: 1.30}},
	{UpTo: 0, Mults: Range{Min: 1.30, Max: 1.50}}, // open-ended
}

// A full exterior package (all five items) never prices below this floor;
// per-item summation underestimates the known minimum job size.
const (
	fullPackageFloorMin      = 4500
	fullPackageMaxMultiplier = 2.2
)

// Combined interior+exterior correction: additive summation under-prices
// jobs that empirically cost more than the sum of their parts.
const (
	combinedAnchorMin = 6000
	combinedMedian    = 9500
	combinedUplift    = 1.2
)

// Trim rates per item, multiplied by the interior room count.
var trimRates = map[entities.TrimItem]Range{
	entities.TrimDoors:          {Min: 120, Max: 220},
	entities.TrimWindowFrames:   {Min: 90, Max: 180},
	entities.TrimSkirtingBoards: {Min: 80, Max: 160},
}

// Water-based enamel costs more in both material and drying time.
var trimPaintTypeMultipliers = map[entities.TrimPaintType]Range{
	entities.TrimPaintOilBased:   {Min: 1.00, Max: 1.10},
	entities.TrimPaintWaterBased: {Min: 1.10, Max: 1.25},
}

// Condition of the existing paintwork scales the whole job: poor surfaces
// need sanding, patching and priming before a brush touches them.
var conditionMultipliers = map[entities.PaintCondition]Range{
	entities.ConditionExcellent: {Min: 0.92, Max: 0.97},
	entities.ConditionFair:      {Min: 1.00, Max: 1.08},
	entities.ConditionPoor:      {Min: 1.18, Max: 1.35},
}

// Flat surcharges, not multipliers: a staircase costs the same extra hours
// on a small job as on a big one.
var difficultyAddOns = map[entities.DifficultyFactor]Range{
	entities.DifficultyStairs:       {Min: 250, Max: 500},
	entities.DifficultyHighCeilings: {Min: 400, Max: 900},
	entities.DifficultyMouldings:    {Min: 350, Max: 700},
	entities.DifficultyAccess:       {Min: 300, Max: 800},
}

// Beyond HardCap the service refuses to quote a number and asks for a site
// inspection; CapFloorMin keeps the displayed band from implying false
// precision on very large jobs.
const (
	HardCap     = 60000
	CapFloorMin = 45000
)

// InteriorAnchor exposes the baseline interior range for tests and the
// explanation prompt.
func InteriorAnchor() Range { return interiorAnchor }

// MaxRoomFactor exposes the room factor ceiling.
func MaxRoomFactor() float64 { return maxRoomFactor }

// CombinedAnchorMin exposes the combined-job price floor.
func CombinedAnchorMin() int { return combinedAnchorMin }

// FullPackageFloor exposes the full exterior package minimum.
func FullPackageFloor() int { return fullPackageFloorMin }
