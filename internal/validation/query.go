package validation

import (
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/JaimeStill/document-registry/pkg/faults"
)

// ErrUnknownParameters is returned for query parameters an endpoint does not support.
var ErrUnknownParameters = faults.Validation("", "unknown-parameters", "unknown query parameters")

// Query rejects every parameter of values not listed in allowed.
func Query(values url.Values, allowed ...string) error {
	var unknown []string
	for key := range values {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	err := *ErrUnknownParameters
	err.Message = "unknown query parameters: " + strings.Join(unknown, ", ")
	return &err
}
