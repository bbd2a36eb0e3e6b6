package domain

// Filter narrows the catalog listing. Nil fields are ignored.
type Filter struct {
	Search   string
	Age      *int
	Size     *Size
	Weight   *float64
	SpecieID *int64
}

// Matches applies every set criterion. Ownership is not considered here.
func (f Filter) Matches(p *Pet) bool {
	if p == nil {
		return false
	}
	if f.Age != nil && p.Age != *f.Age {
		return false
	}
	if f.Size != nil && p.Size != *f.Size {
		return false
	}
	if f.Weight != nil && p.Weight != *f.Weight {
		return false
	}
	if f.SpecieID != nil && (p.SpecieID == nil || *p.SpecieID != *f.SpecieID) {
		return false
	}
	return p.MatchesSearch(f.Search)
}
