package relations

import (
	"net/url"

	"github.com/JaimeStill/document-registry/internal/validation"
)

// Query parameters accepted by the list endpoint.
const (
	ParamObject           = "object"
	ParamInformatieobject = "informatieobject"
)

// Filters narrows a relation listing. Empty fields do not filter.
type Filters struct {
	Object           string
	Informatieobject string
}

// FiltersFromQuery parses the list filters and rejects unknown parameters.
func FiltersFromQuery(values url.Values) (Filters, error) {
	if err := validation.Query(values, ParamObject, ParamInformatieobject); err != nil {
		return Filters{}, err
	}
	return Filters{
		Object:           values.Get(ParamObject),
		Informatieobject: values.Get(ParamInformatieobject),
	}, nil
}
