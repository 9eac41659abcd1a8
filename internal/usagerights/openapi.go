package usagerights

import "github.com/JaimeStill/document-registry/pkg/openapi"

type spec struct {
	List          *openapi.Operation
	Create        *openapi.Operation
	Find          *openapi.Operation
	Update        *openapi.Operation
	PartialUpdate *openapi.Operation
	Delete        *openapi.Operation
}

var uuidParam = openapi.PathParam("uuid", "Usage right UUID")

var Spec = spec{
	List: &openapi.Operation{
		Summary:    "List usage rights",
		Parameters: listParams(),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Usage rights",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Gebruiksrechten")}},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create usage right",
		Description: "Sets the indicatieGebruiksrecht of the document to true",
		RequestBody: openapi.RequestBodyJSON("Gebruiksrechten", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created usage right", "Gebruiksrechten"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find usage right",
		Parameters: []*openapi.Parameter{uuidParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Usage right", "Gebruiksrechten"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update usage right",
		Parameters:  []*openapi.Parameter{uuidParam},
		RequestBody: openapi.RequestBodyJSON("Gebruiksrechten", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated usage right", "Gebruiksrechten"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	PartialUpdate: &openapi.Operation{
		Summary:     "Partially update usage right",
		Parameters:  []*openapi.Parameter{uuidParam},
		RequestBody: openapi.RequestBodyJSON("Gebruiksrechten", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated usage right", "Gebruiksrechten"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete usage right",
		Description: "Resets the indicatieGebruiksrecht of the document when the last usage right is removed",
		Parameters:  []*openapi.Parameter{uuidParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Usage right deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func listParams() []*openapi.Parameter {
	params := make([]*openapi.Parameter, 0, len(Params()))
	for _, p := range Params() {
		if p == ParamInformatieobject {
			params = append(params, openapi.QueryParam(p, "string", "URL of the document", false))
			continue
		}
		params = append(params, openapi.QueryParam(p, "string", "RFC 3339 timestamp bound", false))
	}
	return params
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Gebruiksrechten": {
			Type:     "object",
			Required: []string{"informatieobject", "startdatum", "omschrijvingVoorwaarden"},
			Properties: map[string]*openapi.Schema{
				"url":                     {Type: "string", Format: "uri", ReadOnly: true},
				"informatieobject":        {Type: "string", Format: "uri", Description: "Cannot change after creation"},
				"startdatum":              {Type: "string", Format: "date-time"},
				"einddatum":               {Type: "string", Format: "date-time", Nullable: true},
				"omschrijvingVoorwaarden": {Type: "string"},
			},
		},
	}
}
