package usagerights

import (
	"net/url"
	"time"

	"github.com/JaimeStill/document-registry/internal/validation"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

const ParamInformatieobject = "informatieobject"

// Bound suffixes of the date filters, e.g. startdatum__lte.
var lookups = []string{"lt", "lte", "gt", "gte"}

// Bounds holds the comparison filters of one date attribute.
type Bounds struct {
	LT  *time.Time
	LTE *time.Time
	GT  *time.Time
	GTE *time.Time
}

func (b *Bounds) set(lookup string, t time.Time) {
	switch lookup {
	case "lt":
		b.LT = &t
	case "lte":
		b.LTE = &t
	case "gt":
		b.GT = &t
	case "gte":
		b.GTE = &t
	}
}

// Filters narrows a usage right listing.
type Filters struct {
	Informatieobject string
	Startdatum       Bounds
	Einddatum        Bounds
}

// Params lists every accepted query parameter.
func Params() []string {
	params := []string{ParamInformatieobject}
	for _, attr := range []string{"startdatum", "einddatum"} {
		for _, l := range lookups {
			params = append(params, attr+"__"+l)
		}
	}
	return params
}

// FiltersFromQuery parses the list filters. Unknown parameters and
// malformed timestamps are rejected.
func FiltersFromQuery(values url.Values) (Filters, error) {
	if err := validation.Query(values, Params()...); err != nil {
		return Filters{}, err
	}

	f := Filters{Informatieobject: values.Get(ParamInformatieobject)}
	var errs faults.List
	attrs := []struct {
		name   string
		bounds *Bounds
	}{
		{"startdatum", &f.Startdatum},
		{"einddatum", &f.Einddatum},
	}
	for _, attr := range attrs {
		for _, l := range lookups {
			param := attr.name + "__" + l
			raw := values.Get(param)
			if raw == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				errs = append(errs, faults.Validation(param, "invalid", "expected an RFC 3339 timestamp"))
				continue
			}
			attr.bounds.set(l, t)
		}
	}
	if len(errs) > 0 {
		return Filters{}, errs.Err()
	}
	return f, nil
}
