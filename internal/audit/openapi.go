package audit

import "github.com/JaimeStill/document-registry/pkg/openapi"

type spec struct {
	List *openapi.Operation
	Find *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List audit trails",
		Description: "List the audit trails of a document, oldest first",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("uuid", "Document UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Audit trails",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("AuditTrail")}},
				},
			},
		},
	},
	Find: &openapi.Operation{
		Summary: "Find audit trail",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("uuid", "Document UUID"),
			openapi.PathParam("audit_uuid", "Audit trail UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Audit trail", "AuditTrail"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"AuditTrail": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"url":                {Type: "string", Format: "uri", ReadOnly: true},
				"uuid":               {Type: "string", Format: "uuid"},
				"bron":               {Type: "string", Enum: []string{Bron}},
				"applicatieId":       {Type: "string"},
				"applicatieWeergave": {Type: "string"},
				"gebruikersId":       {Type: "string"},
				"gebruikersWeergave": {Type: "string"},
				"actie":              {Type: "string"},
				"actieWeergave":      {Type: "string"},
				"resultaat":          {Type: "integer", Description: "HTTP status of the audited request"},
				"hoofdObject":        {Type: "string", Format: "uri"},
				"resource":           {Type: "string"},
				"resourceUrl":        {Type: "string", Format: "uri"},
				"toelichting":        {Type: "string"},
				"resourceWeergave":   {Type: "string"},
				"aanmaakdatum":       {Type: "string", Format: "date-time"},
				"wijzigingen": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"oud":   {Type: "object", Nullable: true},
						"nieuw": {Type: "object", Nullable: true},
					},
				},
			},
		},
	}
}
