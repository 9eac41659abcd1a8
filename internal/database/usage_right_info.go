package database

import "time"

// UsageRightInfo records the conditions under which a document may be used.
type UsageRightInfo struct {
	ID                      string
	DocumentID              string
	Startdatum              time.Time
	Einddatum               *time.Time
	OmschrijvingVoorwaarden string
}

func (u *UsageRightInfo) DeepCopy() *UsageRightInfo {
	if u == nil {
		return nil
	}
	c := *u
	c.Einddatum = copyPtr(u.Einddatum)
	return &c
}

// UsageRightFilter narrows ListUsageRights. Nil fields do not filter.
// The bounds compare strictly (LT, GT) or inclusively (LTE, GTE).
type UsageRightFilter struct {
	DocumentID *string

	StartdatumLT  *time.Time
	StartdatumLTE *time.Time
	StartdatumGT  *time.Time
	StartdatumGTE *time.Time

	EinddatumLT  *time.Time
	EinddatumLTE *time.Time
	EinddatumGT  *time.Time
	EinddatumGTE *time.Time
}

// Match reports whether u satisfies every bound of the filter. A nil
// einddatum never satisfies an einddatum bound.
func (f UsageRightFilter) Match(u *UsageRightInfo) bool {
	if f.DocumentID != nil && u.DocumentID != *f.DocumentID {
		return false
	}
	if !inBounds(&u.Startdatum, f.StartdatumLT, f.StartdatumLTE, f.StartdatumGT, f.StartdatumGTE) {
		return false
	}
	return inBounds(u.Einddatum, f.EinddatumLT, f.EinddatumLTE, f.EinddatumGT, f.EinddatumGTE)
}

func inBounds(v, lt, lte, gt, gte *time.Time) bool {
	if lt == nil && lte == nil && gt == nil && gte == nil {
		return true
	}
	if v == nil {
		return false
	}
	if lt != nil && !v.Before(*lt) {
		return false
	}
	if lte != nil && v.After(*lte) {
		return false
	}
	if gt != nil && !v.After(*gt) {
		return false
	}
	if gte != nil && v.Before(*gte) {
		return false
	}
	return true
}
