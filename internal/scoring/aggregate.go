package scoring

// Aggregate scores one competency's errors. justification is the raw text of
// an optional external proposal; when it is empty or carries no grade the
// base band stands. The returned band is always a valid band.
func Aggregate(errs []GradedError, justification string) CompetencyGrade {
	if errs == nil {
		errs = []GradedError{}
	}
	counts := Count(errs)
	total := len(errs)
	base := BaseBand(total, counts)

	g := CompetencyGrade{
		Band:     base,
		BaseBand: base,
		Counts:   counts,
		Total:    total,
		Errors:   errs,
	}

	j, err := ParseJustification(justification)
	if err != nil {
		return g
	}
	snapped := Snap(j.Grade)
	g.Proposed = &snapped
	g.Band = Reconcile(base, snapped)
	g.Adjusted = g.Band != snapped
	g.Justification = j.Text
	return g
}
