package entities

import (
	"encoding/json"
	"time"
)

// WorkType classifies a job as interior and/or exterior painting.
type WorkType string

const (
	WorkTypeInterior WorkType = "Interior Painting"
	WorkTypeExterior WorkType = "Exterior Painting"
)

type ScopeOfPainting string

const (
	ScopeEntireProperty ScopeOfPainting = "Entire property"
	ScopeSpecificAreas  ScopeOfPainting = "Specific areas only"
)

type TimingPurpose string

const (
	TimingMaintenance TimingPurpose = "Maintenance or refresh"
	TimingSaleRental  TimingPurpose = "Preparing for sale or rental"
)

// PaintCondition describes the state of the existing paintwork. An empty
// value means the customer didn't answer; pricing falls back to Fair.
type PaintCondition string

const (
	ConditionExcellent PaintCondition = "Excellent"
	ConditionFair      PaintCondition = "Fair"
	ConditionPoor      PaintCondition = "Poor"
)

type DifficultyFactor string

const (
	DifficultyStairs       DifficultyFactor = "Stairs"
	DifficultyHighCeilings DifficultyFactor = "High ceilings"
	DifficultyMouldings    DifficultyFactor = "Extensive mouldings or trims"
	DifficultyAccess       DifficultyFactor = "Difficult access areas"
)

type ExteriorArea string

const (
	ExteriorWall     ExteriorArea = "Wall"
	ExteriorEaves    ExteriorArea = "Eaves"
	ExteriorGutter   ExteriorArea = "Gutter"
	ExteriorFascia   ExteriorArea = "Fascia"
	ExteriorTrimArea ExteriorArea = "Exterior Trim"
)

type TrimPaintType string

const (
	TrimPaintOilBased   TrimPaintType = "Oil-based"
	TrimPaintWaterBased TrimPaintType = "Water-based"
)

type TrimItem string

const (
	TrimDoors          TrimItem = "Doors"
	TrimWindowFrames   TrimItem = "Window Frames"
	TrimSkirtingBoards TrimItem = "Skirting Boards"
)

// PaintAreas carries the ceiling/wall checkboxes. Trim selection lives in
// TrimPaint so a "trim selected but no options" state cannot exist.
type PaintAreas struct {
	CeilingPaint bool `json:"ceilingPaint"`
	WallPaint    bool `json:"wallPaint"`
}

// TrimPaintSelection holds the trim detail supplied when trim painting is
// part of the job.
type TrimPaintSelection struct {
	PaintType TrimPaintType `json:"paintType"`
	TrimItems []TrimItem    `json:"trimItems"`
}

// TrimPaint is a tagged variant: either no trim painting, or a selection
// with paint type and items. The zero value means "no trim painting".
type TrimPaint struct {
	sel *TrimPaintSelection
}

func NoTrimPaint() TrimPaint {
	return TrimPaint{}
}

func TrimPaintWith(sel TrimPaintSelection) TrimPaint {
	return TrimPaint{sel: &sel}
}

func (t TrimPaint) Selected() bool {
	return t.sel != nil
}

// Selection returns the trim detail and whether trim painting was selected.
func (t TrimPaint) Selection() (TrimPaintSelection, bool) {
	if t.sel == nil {
		return TrimPaintSelection{}, false
	}
	return *t.sel, true
}

func (t TrimPaint) MarshalJSON() ([]byte, error) {
	if t.sel == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.sel)
}

func (t *TrimPaint) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.sel = nil
		return nil
	}
	var sel TrimPaintSelection
	if err := json.Unmarshal(data, &sel); err != nil {
		return err
	}
	t.sel = &sel
	return nil
}

// JobSpecification is the validated, immutable job description a customer
// submits. It is persisted verbatim inside the EstimateRecord.
type JobSpecification struct {
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone,omitempty"`
	TypeOfWork         []WorkType         `json:"typeOfWork"`
	ScopeOfPainting    ScopeOfPainting    `json:"scopeOfPainting"`
	PropertyType       string             `json:"propertyType"`
	RoomsToPaint       []string           `json:"roomsToPaint,omitempty"`
	ExteriorAreas      []ExteriorArea     `json:"exteriorAreas,omitempty"`
	ApproxSize         *float64           `json:"approxSize,omitempty"`
	ExistingWallColour string             `json:"existingWallColour,omitempty"`
	Location           string             `json:"location,omitempty"`
	TimingPurpose      TimingPurpose      `json:"timingPurpose"`
	PaintCondition     PaintCondition     `json:"paintCondition,omitempty"`
	JobDifficulty      []DifficultyFactor `json:"jobDifficulty,omitempty"`
	PaintAreas         PaintAreas         `json:"paintAreas"`
	TrimPaint          TrimPaint          `json:"trimPaint"`
}

func (s JobSpecification) HasWorkType(wt WorkType) bool {
	for _, t := range s.TypeOfWork {
		if t == wt {
			return true
		}
	}
	return false
}

// EffectiveCondition resolves the condition used for pricing. Unanswered
// defaults to Fair.
func (s JobSpecification) EffectiveCondition() PaintCondition {
	if s.PaintCondition == "" {
		return ConditionFair
	}
	return s.PaintCondition
}

// PriceBand is the computed {min,max} AUD range for one submission.
// RequiresInspection is set when the pre-cap maximum exceeded the hard cap
// and the band was clamped; such jobs get a sentinel price range instead of
// a numeric one.
type PriceBand struct {
	Min                int  `json:"min"`
	Max                int  `json:"max"`
	RequiresInspection bool `json:"requiresInspection,omitempty"`
}

// EstimateResult is what the customer sees: a formatted price range, a
// natural-language explanation and a short list of pricing factors.
type EstimateResult struct {
	PriceRange  string   `json:"priceRange"`
	Explanation string   `json:"explanation"`
	Details     []string `json:"details"`
}

// EstimateRecord is the persisted submission: the spec as submitted plus the
// generated result. Records are append-only and never updated in place.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id, used for per-user quota counts.
type EstimateRecord struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Options   JobSpecification `json:"options"`
	Estimate  EstimateResult   `json:"estimate"`
	CreatedAt time.Time        `json:"created_at"`
}
