package validation

import (
	"strings"

	"paintbuddy/internal/domain/entities"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// FieldErrors maps a field path to one or more human-readable messages.
// It is surfaced verbatim to the caller; nothing here is a server failure.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// SpecificationInput is the raw wire shape of a submission, before any
// normalization. TrimPaintOptions rides next to the trimPaint flag exactly
// as the form sends it; Validate folds the pair into the tagged variant.
type SpecificationInput struct {
	Name               string               `json:"name"`
	Email              string               `json:"email"`
	Phone              string               `json:"phone"`
	TypeOfWork         []string             `json:"typeOfWork"`
	ScopeOfPainting    string               `json:"scopeOfPainting"`
	PropertyType       string               `json:"propertyType"`
	RoomsToPaint       []string             `json:"roomsToPaint"`
	ExteriorAreas      []string             `json:"exteriorAreas"`
	ApproxSize         *float64             `json:"approxSize"`
	ExistingWallColour string               `json:"existingWallColour"`
	Location           string               `json:"location"`
	TimingPurpose      string               `json:"timingPurpose"`
	PaintCondition     string               `json:"paintCondition"`
	JobDifficulty      []string             `json:"jobDifficulty"`
	PaintAreas         PaintAreasInput      `json:"paintAreas"`
	TrimPaintOptions   *TrimPaintOptsInput  `json:"trimPaintOptions"`
}

type PaintAreasInput struct {
	CeilingPaint bool `json:"ceilingPaint"`
	WallPaint    bool `json:"wallPaint"`
	TrimPaint    bool `json:"trimPaint"`
}

type TrimPaintOptsInput struct {
	PaintType string   `json:"paintType"`
	TrimItems []string `json:"trimItems"`
}

var (
	workTypeValues = []interface{}{
		string(entities.WorkTypeInterior), string(entities.WorkTypeExterior),
	}
	scopeValues = []interface{}{
		string(entities.ScopeEntireProperty), string(entities.ScopeSpecificAreas),
	}
	timingValues = []interface{}{
		string(entities.TimingMaintenance), string(entities.TimingSaleRental),
	}
	conditionValues = []interface{}{
		string(entities.ConditionExcellent), string(entities.ConditionFair), string(entities.ConditionPoor),
	}
	difficultyValues = []interface{}{
		string(entities.DifficultyStairs), string(entities.DifficultyHighCeilings),
		string(entities.DifficultyMouldings), string(entities.DifficultyAccess),
	}
	exteriorAreaValues = []interface{}{
		string(entities.ExteriorWall), string(entities.ExteriorEaves), string(entities.ExteriorGutter),
		string(entities.ExteriorFascia), string(entities.ExteriorTrimArea),
	}
	trimPaintTypeValues = []interface{}{
		string(entities.TrimPaintOilBased), string(entities.TrimPaintWaterBased),
	}
	trimItemValues = []interface{}{
		string(entities.TrimDoors), string(entities.TrimWindowFrames), string(entities.TrimSkirtingBoards),
	}
)

// Validate checks a raw submission and, when clean, normalizes it into a
// JobSpecification. Expected bad input comes back as FieldErrors, never as
// a panic or an opaque error. The check itself has no side effects.
func Validate(input SpecificationInput) (entities.JobSpecification, FieldErrors) {
	fieldErrs := FieldErrors{}

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name, validation.Required.Error("Name is required")),
		validation.Field(&input.Email,
			validation.Required.Error("Email is required"),
			is.Email.Error("Invalid email address"),
		),
		validation.Field(&input.TypeOfWork,
			validation.Required.Error("Please select at least one type of work"),
			validation.Each(validation.In(workTypeValues...).Error("Unknown type of work")),
		),
		validation.Field(&input.ScopeOfPainting,
			validation.Required.Error("Scope of painting is required"),
			validation.In(scopeValues...).Error("Unknown scope of painting"),
		),
		validation.Field(&input.PropertyType, validation.Required.Error("Property type is required")),
		validation.Field(&input.TimingPurpose,
			validation.Required.Error("Timing or purpose is required"),
			validation.In(timingValues...).Error("Unknown timing or purpose"),
		),
		validation.Field(&input.PaintCondition,
			validation.In(conditionValues...).Error("Unknown paint condition"),
		),
		validation.Field(&input.JobDifficulty,
			validation.Each(validation.In(difficultyValues...).Error("Unknown difficulty factor")),
		),
		validation.Field(&input.ExteriorAreas,
			validation.Each(validation.In(exteriorAreaValues...).Error("Unknown exterior area")),
		),
	)
	mergeOzzo(fieldErrs, "", err)

	if input.ApproxSize != nil && *input.ApproxSize <= 0 {
		fieldErrs.add("approxSize", "Approximate size must be a positive number")
	}

	for _, room := range input.RoomsToPaint {
		if strings.TrimSpace(room) == "" {
			fieldErrs.add("roomsToPaint", "Room names must not be empty")
			break
		}
	}

	trim := entities.NoTrimPaint()
	if input.PaintAreas.TrimPaint {
		if input.TrimPaintOptions == nil {
			fieldErrs.add("trimPaintOptions", "Please select trim paint options")
		} else {
			opts := input.TrimPaintOptions
			err := validation.ValidateStruct(opts,
				validation.Field(&opts.PaintType,
					validation.Required.Error("Trim paint type is required"),
					validation.In(trimPaintTypeValues...).Error("Unknown trim paint type"),
				),
				validation.Field(&opts.TrimItems,
					validation.Required.Error("Please select at least one trim item"),
					validation.Each(validation.In(trimItemValues...).Error("Unknown trim item")),
				),
			)
			mergeOzzo(fieldErrs, "trimPaintOptions.", err)
			if fieldErrs.Empty() {
				trim = entities.TrimPaintWith(entities.TrimPaintSelection{
					PaintType: entities.TrimPaintType(opts.PaintType),
					TrimItems: toTrimItems(opts.TrimItems),
				})
			}
		}
	}
	// trimPaint unticked: any stray options are stripped, not rejected.

	if !fieldErrs.Empty() {
		return entities.JobSpecification{}, fieldErrs
	}

	return entities.JobSpecification{
		Name:               strings.TrimSpace(input.Name),
		Email:              strings.TrimSpace(input.Email),
		Phone:              strings.TrimSpace(input.Phone),
		TypeOfWork:         toWorkTypes(input.TypeOfWork),
		ScopeOfPainting:    entities.ScopeOfPainting(input.ScopeOfPainting),
		PropertyType:       strings.TrimSpace(input.PropertyType),
		RoomsToPaint:       input.RoomsToPaint,
		ExteriorAreas:      toExteriorAreas(input.ExteriorAreas),
		ApproxSize:         input.ApproxSize,
		ExistingWallColour: strings.TrimSpace(input.ExistingWallColour),
		Location:           strings.TrimSpace(input.Location),
		TimingPurpose:      entities.TimingPurpose(input.TimingPurpose),
		PaintCondition:     entities.PaintCondition(input.PaintCondition),
		JobDifficulty:      toDifficulties(input.JobDifficulty),
		PaintAreas: entities.PaintAreas{
			CeilingPaint: input.PaintAreas.CeilingPaint,
			WallPaint:    input.PaintAreas.WallPaint,
		},
		TrimPaint: trim,
	}, nil
}

// mergeOzzo flattens ozzo's field->error map into FieldErrors, lowering the
// struct field names to their JSON spelling via the prefix-free ozzo keys.
func mergeOzzo(dst FieldErrors, prefix string, err error) {
	if err == nil {
		return
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		dst.add(prefix+"_form", err.Error())
		return
	}
	for field, ferr := range errs {
		if nested, ok := ferr.(validation.Errors); ok {
			// Each() indexes offending elements; the index is noise for a
			// field-path map, so element errors collapse onto the parent.
			for sub, serr := range nested {
				if isIndexKey(sub) {
					dst.add(prefix+field, serr.Error())
				} else {
					dst.add(prefix+field+"."+sub, serr.Error())
				}
			}
			continue
		}
		dst.add(prefix+field, ferr.Error())
	}
}

func isIndexKey(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func toWorkTypes(in []string) []entities.WorkType {
	out := make([]entities.WorkType, 0, len(in))
	for _, v := range in {
		out = append(out, entities.WorkType(v))
	}
	return out
}

func toExteriorAreas(in []string) []entities.ExteriorArea {
	if len(in) == 0 {
		return nil
	}
	out := make([]entities.ExteriorArea, 0, len(in))
	for _, v := range in {
		out = append(out, entities.ExteriorArea(v))
	}
	return out
}

func toDifficulties(in []string) []entities.DifficultyFactor {
	if len(in) == 0 {
		return nil
	}
	out := make([]entities.DifficultyFactor, 0, len(in))
	for _, v := range in {
		out = append(out, entities.DifficultyFactor(v))
	}
	return out
}

func toTrimItems(in []string) []entities.TrimItem {
	out := make([]entities.TrimItem, 0, len(in))
	for _, v := range in {
		out = append(out, entities.TrimItem(v))
	}
	return out
}
