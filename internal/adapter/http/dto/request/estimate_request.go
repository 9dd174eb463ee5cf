package request

import (
	"paintbuddy/internal/domain/validation"
)

// EstimateRequest is the multi-step quote form payload. Field names match
// the form exactly; no binding tags here because the validator owns all
// field-level rules and reports them per field rather than per request.
type EstimateRequest struct {
	Name               string                `json:"name"`
	Email              string                `json:"email"`
	Phone              string                `json:"phone"`
	TypeOfWork         []string              `json:"typeOfWork"`
	ScopeOfPainting    string                `json:"scopeOfPainting"`
	PropertyType       string                `json:"propertyType"`
	RoomsToPaint       []string              `json:"roomsToPaint"`
	ExteriorAreas      []string              `json:"exteriorAreas"`
	ApproxSize         *float64              `json:"approxSize"`
	ExistingWallColour string                `json:"existingWallColour"`
	Location           string                `json:"location"`
	TimingPurpose      string                `json:"timingPurpose"`
	PaintCondition     string                `json:"paintCondition"`
	JobDifficulty      []string              `json:"jobDifficulty"`
	PaintAreas         PaintAreasRequest     `json:"paintAreas"`
	TrimPaintOptions   *TrimPaintOptsRequest `json:"trimPaintOptions"`
}

type PaintAreasRequest struct {
	CeilingPaint bool `json:"ceilingPaint"`
	WallPaint    bool `json:"wallPaint"`
	TrimPaint    bool `json:"trimPaint"`
}

type TrimPaintOptsRequest struct {
	PaintType string   `json:"paintType"`
	TrimItems []string `json:"trimItems"`
}

// ToInput hands the raw payload to the domain validator unchanged.
func (r EstimateRequest) ToInput() validation.SpecificationInput {
	input := validation.SpecificationInput{
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		TypeOfWork:         r.TypeOfWork,
		ScopeOfPainting:    r.ScopeOfPainting,
		PropertyType:       r.PropertyType,
		RoomsToPaint:       r.RoomsToPaint,
		ExteriorAreas:      r.ExteriorAreas,
		ApproxSize:         r.ApproxSize,
		ExistingWallColour: r.ExistingWallColour,
		Location:           r.Location,
		TimingPurpose:      r.TimingPurpose,
		PaintCondition:     r.PaintCondition,
		JobDifficulty:      r.JobDifficulty,
		PaintAreas: validation.PaintAreasInput{
			CeilingPaint: r.PaintAreas.CeilingPaint,
			WallPaint:    r.PaintAreas.WallPaint,
			TrimPaint:    r.PaintAreas.TrimPaint,
		},
	}
	if r.TrimPaintOptions != nil {
		input.TrimPaintOptions = &validation.TrimPaintOptsInput{
			PaintType: r.TrimPaintOptions.PaintType,
			TrimItems: r.TrimPaintOptions.TrimItems,
		}
	}
	return input
}
