package postgres

import "github.com/JaimeStill/document-registry/pkg/query"

func versionColumns(p *query.ProjectionMap) *query.ProjectionMap {
	return p.
		Project("document_id", "DocumentID").
		Project("version", "Versie").
		Project("begin_registratie", "BeginRegistratie").
		Project("identificatie", "Identificatie").
		Project("bronorganisatie", "Bronorganisatie").
		Project("creatiedatum", "Creatiedatum").
		Project("titel", "Titel").
		Project("vertrouwelijkheidaanduiding", "Vertrouwelijkheidaanduiding").
		Project("auteur", "Auteur").
		Project("status", "Status").
		Project("formaat", "Formaat").
		Project("taal", "Taal").
		Project("bestandsnaam", "Bestandsnaam").
		Project("link", "Link").
		Project("beschrijving", "Beschrijving").
		Project("ontvangstdatum", "Ontvangstdatum").
		Project("verzenddatum", "Verzenddatum").
		Project("ondertekening_soort", "OndertekeningSoort").
		Project("ondertekening_datum", "OndertekeningDatum").
		Project("integriteit_algoritme", "IntegriteitAlgoritme").
		Project("integriteit_waarde", "IntegriteitWaarde").
		Project("integriteit_datum", "IntegriteitDatum").
		Project("informatieobjecttype", "Informatieobjecttype").
		Project("content_key", "ContentKey").
		Project("bestandsomvang", "Bestandsomvang").
		Project("paginas", "Paginas").
		ProjectAs("d", "indicatie_gebruiksrecht", "IndicatieGebruiksrecht").
		ProjectAs("d", "lock", "Lock")
}

// versionProjection joins every version with its identity row.
var versionProjection = versionColumns(
	query.NewProjectionMap("public", "document_versions", "v").
		Join("JOIN public.documents d ON d.id = v.document_id"),
)

// latestProjection only yields the latest version of each identity.
var latestProjection = versionColumns(
	query.NewProjectionMap("public", "document_versions", "v").
		Join("JOIN public.documents d ON d.id = v.document_id AND d.latest_version = v.version"),
)

// latestOrder lists identities in insertion order.
var latestOrder = []query.SortField{{Field: "d.seq"}}

var documentProjection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("lock", "Lock").
	Project("latest_version", "LatestVersion").
	Project("indicatie_gebruiksrecht", "IndicatieGebruiksrecht").
	Project("created_at", "CreatedAt")

var relationProjection = query.NewProjectionMap("public", "object_relations", "r").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("object_url", "Object").
	Project("object_type", "ObjectType").
	Project("titel", "Titel").
	Project("beschrijving", "Beschrijving").
	Project("registratiedatum", "Registratiedatum")

var usageRightProjection = query.NewProjectionMap("public", "usage_rights", "u").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("startdatum", "Startdatum").
	Project("einddatum", "Einddatum").
	Project("omschrijving_voorwaarden", "OmschrijvingVoorwaarden")

var auditTrailProjection = query.NewProjectionMap("public", "audit_trails", "a").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("bron", "Bron").
	Project("applicatie_id", "ApplicatieID").
	Project("applicatie_weergave", "ApplicatieWeergave").
	Project("gebruikers_id", "GebruikersID").
	Project("gebruikers_weergave", "GebruikersWeergave").
	Project("actie", "Actie").
	Project("actie_weergave", "ActieWeergave").
	Project("resultaat", "Resultaat").
	Project("hoofd_object", "HoofdObject").
	Project("resource", "Resource").
	Project("resource_url", "ResourceURL").
	Project("resource_weergave", "ResourceWeergave").
	Project("toelichting", "Toelichting").
	Project("aanmaakdatum", "AanmaakDatum").
	Project("oud", "Oud").
	Project("nieuw", "Nieuw")
