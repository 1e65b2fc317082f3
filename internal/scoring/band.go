package scoring

// MaxAdjustment is how far a proposal may move away from the base band
// before the lower of the two is taken.
const MaxAdjustment = 40

type bandRule struct {
	band  int
	match func(total int, c Counts) bool
}

var bandRules = []bandRule{
	{200, func(total int, c Counts) bool {
		return total <= 3 && c[Sintaxe] <= 1 && c[Registro] == 0 && c[Ortografia] <= 1
	}},
	{160, func(total int, c Counts) bool {
		return total <= 5 && c[Sintaxe] <= 2 && c[Registro] <= 1
	}},
	{120, func(total int, c Counts) bool { return total <= 8 && c[Sintaxe] <= 3 }},
	{80, func(total int, _ Counts) bool { return total <= 12 }},
	{40, func(total int, _ Counts) bool { return total <= 15 }},
}

// BaseBand selects the band for an error total and category counts. Rules
// are evaluated top down and the first match wins.
func BaseBand(total int, c Counts) int {
	for _, r := range bandRules {
		if r.match(total, c) {
			return r.band
		}
	}
	return 0
}

// Snap rounds a grade to the nearest band. Ties go to the lower band.
func Snap(grade int) int {
	if grade <= 0 {
		return 0
	}
	if grade >= MaxBand {
		return MaxBand
	}
	q, r := grade/40, grade%40
	if r > 20 {
		q++
	}
	return q * 40
}

// Reconcile applies an external proposal to a base band. The proposal is
// snapped; if it then differs from base by more than MaxAdjustment the lower
// of the two wins.
func Reconcile(base, proposed int) int {
	snapped := Snap(proposed)
	diff := snapped - base
	if diff < 0 {
		diff = -diff
	}
	if diff > MaxAdjustment {
		return min(snapped, base)
	}
	return snapped
}

// IsBand reports whether v is a valid band value.
func IsBand(v int) bool {
	return v >= 0 && v <= MaxBand && v%40 == 0
}
