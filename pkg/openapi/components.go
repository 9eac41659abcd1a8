package openapi

import "maps"

var one = 1

// NewComponents returns the shared schemas and responses every module references.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":     {Type: "integer", Minimum: &one, Description: "1-based page number"},
					"pageSize": {Type: "integer", Minimum: &one, Description: "Items per page"},
				},
			},
			"Fout": {
				Type:     "object",
				Required: []string{"code", "title", "status", "detail"},
				Properties: map[string]*Schema{
					"type":   {Type: "string"},
					"code":   {Type: "string", Description: "Machine-readable error code"},
					"title":  {Type: "string"},
					"status": {Type: "integer"},
					"detail": {Type: "string"},
					"invalidParams": {
						Type:  "array",
						Items: SchemaRef("InvalidParam"),
					},
				},
			},
			"InvalidParam": {
				Type: "object",
				Properties: map[string]*Schema{
					"name":   {Type: "string", Nullable: true, Description: "Offending field, null for non-field errors"},
					"code":   {Type: "string"},
					"reason": {Type: "string"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":    ResponseJSON("Invalid request", "Fout"),
			"NotFound":      ResponseJSON("Resource not found", "Fout"),
			"Conflict":      ResponseJSON("Request conflicts with the resource state", "Fout"),
			"InternalError": ResponseJSON("Backend failure", "Fout"),
		},
	}
}

// AddSchemas merges schemas into the components, overwriting on name collision.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges responses into the components, overwriting on name collision.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
