package documents

import (
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/validation"
	"github.com/JaimeStill/document-registry/pkg/pagination"
)

// Query parameters of the document endpoints.
const (
	ParamIdentificatie   = "identificatie"
	ParamBronorganisatie = "bronorganisatie"
	ParamVersie          = "versie"
	ParamRegistratieOp   = "registratieOp"
)

// Filters contains optional exact-match criteria for listing documents.
type Filters struct {
	Identificatie   *string
	Bronorganisatie *string
}

// FiltersFromQuery extracts the list filters and rejects unknown parameters.
func FiltersFromQuery(values url.Values) (Filters, error) {
	err := validation.Query(values,
		ParamIdentificatie,
		ParamBronorganisatie,
		pagination.ParamPage,
		pagination.ParamPageSize,
	)
	if err != nil {
		return Filters{}, err
	}

	var f Filters
	if v := values.Get(ParamIdentificatie); v != "" {
		f.Identificatie = &v
	}
	if v := values.Get(ParamBronorganisatie); v != "" {
		f.Bronorganisatie = &v
	}
	return f, nil
}

func (f Filters) toVersionFilter() database.VersionFilter {
	return database.VersionFilter{
		Identificatie:   f.Identificatie,
		Bronorganisatie: f.Bronorganisatie,
	}
}

// Pin selects a historical version. The zero Pin selects the latest version.
type Pin struct {
	Versie        *int
	RegistratieOp *time.Time
}

// PinFromQuery parses versie and registratieOp and rejects unknown parameters.
func PinFromQuery(values url.Values) (Pin, error) {
	if err := validation.Query(values, ParamVersie, ParamRegistratieOp); err != nil {
		return Pin{}, err
	}

	var p Pin
	if raw := values.Get(ParamVersie); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Pin{}, ErrInvalidPin.WithField(ParamVersie)
		}
		p.Versie = &n
	}
	if raw := values.Get(ParamRegistratieOp); raw != "" {
		t, err := parseTimestamp(raw)
		if err != nil {
			return Pin{}, ErrInvalidPin.WithField(ParamRegistratieOp)
		}
		p.RegistratieOp = &t
	}
	return p, nil
}

// parseTimestamp accepts RFC 3339 timestamps and bare dates, which
// select the end of that day.
func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(24*time.Hour - time.Microsecond), nil
}
