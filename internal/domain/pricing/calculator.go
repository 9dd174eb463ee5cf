package pricing

import (
	"fmt"
	"math"

	"paintbuddy/internal/domain/entities"
)

// InspectionSentinel is shown instead of a numeric range when the computed
// maximum blows past the hard cap.
const InspectionSentinel = "Site inspection required for an accurate quote"

// ComputeBand maps a validated job specification to an AUD price band.
// Pure and deterministic: identical input always yields an identical band.
//
// Interior and exterior sub-totals are computed independently and summed,
// then corrected for combined jobs, surcharged for trim, scaled by paint
// condition, padded with difficulty add-ons, rounded and finally capped.
func ComputeBand(spec entities.JobSpecification) entities.PriceBand {
	interior := spec.HasWorkType(entities.WorkTypeInterior)
	exterior := spec.HasWorkType(entities.WorkTypeExterior)

	var total Range
	if interior {
		sub := interiorSubtotal(spec)
		total.Min += sub.Min
		total.Max += sub.Max
	}
	if exterior {
		sub := exteriorSubtotal(spec)
		total.Min += sub.Min
		total.Max += sub.Max
	}

	if interior && exterior {
		if total.Min < combinedAnchorMin {
			total.Min = combinedAnchorMin
		}
		if total.Max < combinedMedian {
			total.Max = combinedMedian * combinedUplift
		}
	}

	if sel, ok := spec.TrimPaint.Selection(); ok {
		sub := trimSurcharge(sel, len(spec.RoomsToPaint))
		total.Min += sub.Min
		total.Max += sub.Max
	}

	cond := conditionMultipliers[spec.EffectiveCondition()]
	total.Min *= cond.Min
	total.Max *= cond.Max

	for _, d := range spec.JobDifficulty {
		if addOn, ok := difficultyAddOns[d]; ok {
			total.Min += addOn.Min
			total.Max += addOn.Max
		}
	}

	min := int(math.Round(total.Min))
	max := int(math.Round(total.Max))
	if max > HardCap {
		return entities.PriceBand{Min: CapFloorMin, Max: HardCap, RequiresInspection: true}
	}
	return entities.PriceBand{Min: min, Max: max}
}

// FormatBand renders a band the way the result surface expects it, or the
// inspection sentinel when the band was capped.
func FormatBand(band entities.PriceBand) string {
	if band.RequiresInspection {
		return InspectionSentinel
	}
	return fmt.Sprintf("$%s - $%s AUD", formatThousands(band.Min), formatThousands(band.Max))
}

func interiorSubtotal(spec entities.JobSpecification) Range {
	score := 0.0
	for _, room := range spec.RoomsToPaint {
		w, ok := roomWeights[room]
		if !ok {
			w = defaultRoomWeight
		}
		score += w
	}

	factor := clamp(score/baselineRoomScore, minRoomFactor, maxRoomFactor)
	area := areaFactor(spec)
	return Range{
		Min: interiorAnchor.Min * factor * area,
		Max: interiorAnchor.Max * factor * area,
	}
}

// areaFactor sums the fixed surface shares for the selected paint areas.
// Nothing selected means no reduction, not a zero price.
func areaFactor(spec entities.JobSpecification) float64 {
	factor := 0.0
	if spec.PaintAreas.CeilingPaint {
		factor += ceilingShare
	}
	if spec.PaintAreas.WallPaint {
		factor += wallShare
	}
	if spec.TrimPaint.Selected() {
		factor += trimShare
	}
	if factor == 0 {
		return 1.0
	}
	return factor
}

func exteriorSubtotal(spec entities.JobSpecification) Range {
	var sub Range
	for _, area := range spec.ExteriorAreas {
		if base, ok := exteriorBaseCosts[area]; ok {
			sub.Min += base.Min
			sub.Max += base.Max
		}
	}

	sub.Min *= exteriorRiskMultiplier.Min
	sub.Max *= exteriorRiskMultiplier.Max

	band := sizeBandFor(spec.ApproxSize)
	sub.Min *= band.Min
	sub.Max *= band.Max

	if isFullPackage(spec.ExteriorAreas) && sub.Min < fullPackageFloorMin {
		sub.Min = fullPackageFloorMin
		if floorMax := fullPackageFloorMin * fullPackageMaxMultiplier; sub.Max < floorMax {
			sub.Max = floorMax
		}
	}
	return sub
}

func sizeBandFor(size *float64) Range {
	last := exteriorSizeBands[len(exteriorSizeBands)-1].Mults
	if size == nil || *size <= 0 {
		return last
	}
	for _, band := range exteriorSizeBands {
		if band.UpTo > 0 && *size <= band.UpTo {
			return band.Mults
		}
	}
	return last
}

func isFullPackage(areas []entities.ExteriorArea) bool {
	seen := make(map[entities.ExteriorArea]bool, len(areas))
	for _, a := range areas {
		seen[a] = true
	}
	for area := range exteriorBaseCosts {
		if !seen[area] {
			return false
		}
	}
	return true
}

func trimSurcharge(sel entities.TrimPaintSelection, roomCount int) Range {
	if roomCount < 1 {
		roomCount = 1
	}

	var sub Range
	for _, item := range sel.TrimItems {
		if rate, ok := trimRates[item]; ok {
			sub.Min += rate.Min * float64(roomCount)
			sub.Max += rate.Max * float64(roomCount)
		}
	}

	mult, ok := trimPaintTypeMultipliers[sel.PaintType]
	if !ok {
		mult = trimPaintTypeMultipliers[entities.TrimPaintOilBased]
	}
	sub.Min *= mult.Min
	sub.Max *= mult.Max
	return sub
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatThousands(v int) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
