package documents

import (
	"github.com/JaimeStill/document-registry/pkg/openapi"
	"github.com/JaimeStill/document-registry/pkg/pagination"
)

type spec struct {
	List          *openapi.Operation
	Create        *openapi.Operation
	Find          *openapi.Operation
	Update        *openapi.Operation
	PartialUpdate *openapi.Operation
	Delete        *openapi.Operation
	Download      *openapi.Operation
	Lock          *openapi.Operation
	Unlock        *openapi.Operation
}

var (
	uuidParam   = openapi.PathParam("uuid", "Document UUID")
	versieParam = openapi.QueryParam(ParamVersie, "integer", "Version number to return", false)
	asOfParam   = openapi.QueryParam(ParamRegistratieOp, "string", "Return the version registered last at or before this ISO 8601 timestamp", false)
)

var Spec = spec{
	List: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_list",
		Summary:     "List documents",
		Description: "List the latest version of every document in creation order",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam(ParamIdentificatie, "string", "Exact identificatie", false),
			openapi.QueryParam(ParamBronorganisatie, "string", "Exact bronorganisatie RSIN", false),
			openapi.QueryParam(pagination.ParamPage, "integer", "Page number", false),
			openapi.QueryParam(pagination.ParamPageSize, "integer", "Items per page", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Documents page", "EnkelvoudigInformatieObjectPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_create",
		Summary:     "Create document",
		Description: "Register a document with its first version. inhoud carries the base64 encoded content.",
		RequestBody: openapi.RequestBodyJSON("EnkelvoudigInformatieObjectCreate", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created document", "EnkelvoudigInformatieObject"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_read",
		Summary:     "Find document",
		Parameters:  []*openapi.Parameter{uuidParam, versieParam, asOfParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document version", "EnkelvoudigInformatieObject"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_update",
		Summary:     "Update document",
		Description: "Write a new version with every attribute replaced. Requires the lock token.",
		Parameters:  []*openapi.Parameter{uuidParam},
		RequestBody: openapi.RequestBodyJSON("EnkelvoudigInformatieObjectUpdate", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("New document version", "EnkelvoudigInformatieObject"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	PartialUpdate: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_partial_update",
		Summary:     "Partially update document",
		Description: "Write a new version; attributes absent from the body are copied from the latest version. Requires the lock token.",
		Parameters:  []*openapi.Parameter{uuidParam},
		RequestBody: openapi.RequestBodyJSON("EnkelvoudigInformatieObjectUpdate", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("New document version", "EnkelvoudigInformatieObject"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_delete",
		Summary:     "Delete document",
		Description: "Delete the document with all versions, usage rights and content",
		Parameters:  []*openapi.Parameter{uuidParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Document deleted"},
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Download: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_download",
		Summary:     "Download content",
		Parameters:  []*openapi.Parameter{uuidParam, versieParam, asOfParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Document content"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Lock: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_lock",
		Summary:     "Lock document",
		Parameters:  []*openapi.Parameter{uuidParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Lock token", "Lock"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Unlock: &openapi.Operation{
		OperationID: "enkelvoudiginformatieobject_unlock",
		Summary:     "Unlock document",
		Description: "Release the lock. Clients with the documenten.geforceerd-unlock scope may release any lock.",
		Parameters:  []*openapi.Parameter{uuidParam},
		RequestBody: openapi.RequestBodyJSON("Lock", false),
		Responses: map[int]*openapi.Response{
			204: {Description: "Document unlocked"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	date := &openapi.Schema{Type: "string", Format: "date"}
	nullableDate := &openapi.Schema{Type: "string", Format: "date", Nullable: true}
	ondertekening := &openapi.Schema{
		Type:     "object",
		Nullable: true,
		Properties: map[string]*openapi.Schema{
			"soort": {Type: "string", Enum: []string{"analoog", "digitaal", "pki"}},
			"datum": date,
		},
	}
	integriteit := &openapi.Schema{
		Type:     "object",
		Nullable: true,
		Properties: map[string]*openapi.Schema{
			"algoritme": {Type: "string"},
			"waarde":    {Type: "string", MaxLength: 128},
			"datum":     date,
		},
	}

	writable := func() map[string]*openapi.Schema {
		return map[string]*openapi.Schema{
			"identificatie":               {Type: "string", MaxLength: 40},
			"bronorganisatie":             {Type: "string", Description: "RSIN of 9 digits"},
			"creatiedatum":                date,
			"titel":                       {Type: "string", MaxLength: 200},
			"vertrouwelijkheidaanduiding": {Type: "string", Enum: []string{"openbaar", "beperkt_openbaar", "intern", "zaakvertrouwelijk", "vertrouwelijk", "confidentieel", "geheim", "zeer_geheim"}},
			"auteur":                      {Type: "string", MaxLength: 200},
			"status":                      {Type: "string", Enum: []string{StatusInBewerking, StatusTerVaststelling, StatusDefinitief, StatusGearchiveerd}},
			"formaat":                     {Type: "string", MaxLength: 255},
			"taal":                        {Type: "string", Description: "ISO 639-2/B language code"},
			"bestandsnaam":                {Type: "string", MaxLength: 255},
			"link":                        {Type: "string", Format: "uri", MaxLength: 200},
			"beschrijving":                {Type: "string", MaxLength: 1000},
			"ontvangstdatum":              nullableDate,
			"verzenddatum":                nullableDate,
			"indicatieGebruiksrecht":      {Type: "boolean", Nullable: true},
			"ondertekening":               ondertekening,
			"integriteit":                 integriteit,
			"informatieobjecttype":        {Type: "string", Format: "uri", MaxLength: 200},
		}
	}

	read := writable()
	read["url"] = &openapi.Schema{Type: "string", Format: "uri", ReadOnly: true}
	read["versie"] = &openapi.Schema{Type: "integer", ReadOnly: true}
	read["beginRegistratie"] = &openapi.Schema{Type: "string", Format: "date-time", ReadOnly: true}
	read["inhoud"] = &openapi.Schema{Type: "string", Format: "uri", ReadOnly: true, Nullable: true, Description: "Download URL of the content"}
	read["bestandsomvang"] = &openapi.Schema{Type: "integer", ReadOnly: true}
	read["paginas"] = &openapi.Schema{Type: "integer", ReadOnly: true, Nullable: true}
	read["locked"] = &openapi.Schema{Type: "boolean", ReadOnly: true}

	create := writable()
	create["inhoud"] = &openapi.Schema{Type: "string", Format: "byte", Description: "Base64 encoded content"}

	update := writable()
	update["inhoud"] = create["inhoud"]
	update["lock"] = &openapi.Schema{Type: "string", Description: "Lock token returned by the lock endpoint"}

	required := []string{"bronorganisatie", "creatiedatum", "titel", "auteur", "taal", "informatieobjecttype"}

	return map[string]*openapi.Schema{
		"EnkelvoudigInformatieObject":       {Type: "object", Properties: read},
		"EnkelvoudigInformatieObjectCreate": {Type: "object", Required: required, Properties: create},
		"EnkelvoudigInformatieObjectUpdate": {Type: "object", Required: []string{"lock"}, Properties: update},
		"EnkelvoudigInformatieObjectPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"count":    {Type: "integer"},
				"next":     {Type: "string", Format: "uri", Nullable: true},
				"previous": {Type: "string", Format: "uri", Nullable: true},
				"results":  {Type: "array", Items: openapi.SchemaRef("EnkelvoudigInformatieObject")},
			},
		},
		"Lock": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"lock": {Type: "string"}},
		},
	}
}
