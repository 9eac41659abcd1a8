package relations

import "github.com/JaimeStill/document-registry/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Create *openapi.Operation
	Find   *openapi.Operation
	Delete *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary: "List object relations",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam(ParamObject, "string", "URL of the zaak or besluit", false),
			openapi.QueryParam(ParamInformatieobject, "string", "URL of the document", false),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Object relations",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("ObjectInformatieObject")}},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create object relation",
		Description: "Relate a document to a zaak or besluit. Only the registry of the object should call this.",
		RequestBody: openapi.RequestBodyJSON("ObjectInformatieObjectCreate", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created object relation", "ObjectInformatieObject"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find object relation",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("uuid", "Relation UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Object relation", "ObjectInformatieObject"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete object relation",
		Description: "Fails while the registry of the object still holds its side of the relation",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("uuid", "Relation UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Object relation deleted"},
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	objectTypes := []string{"zaak", "besluit"}
	return map[string]*openapi.Schema{
		"ObjectInformatieObject": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"url":                 {Type: "string", Format: "uri", ReadOnly: true},
				"informatieobject":    {Type: "string", Format: "uri"},
				"object":              {Type: "string", Format: "uri"},
				"objectType":          {Type: "string", Enum: objectTypes},
				"aardRelatieWeergave": {Type: "string", ReadOnly: true},
				"titel":               {Type: "string", Description: "Only for zaak relations"},
				"beschrijving":        {Type: "string", Description: "Only for zaak relations"},
				"registratiedatum":    {Type: "string", Format: "date-time", ReadOnly: true, Description: "Only for zaak relations"},
			},
		},
		"ObjectInformatieObjectCreate": {
			Type:     "object",
			Required: []string{"informatieobject", "object", "objectType"},
			Properties: map[string]*openapi.Schema{
				"informatieobject": {Type: "string", Format: "uri"},
				"object":           {Type: "string", Format: "uri", MaxLength: 200},
				"objectType":       {Type: "string", Enum: objectTypes},
				"titel":            {Type: "string", MaxLength: 200},
				"beschrijving":     {Type: "string"},
			},
		},
	}
}
