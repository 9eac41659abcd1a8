package documents

import (
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/date"
)

// DefaultVertrouwelijkheidaanduiding applies when a version leaves the
// confidentiality level blank.
const DefaultVertrouwelijkheidaanduiding = "openbaar"

// Fields are the client-writable attributes of a document version.
type Fields struct {
	Identificatie               string         `json:"identificatie" validate:"max=40"`
	Bronorganisatie             string         `json:"bronorganisatie" validate:"required,rsin"`
	Creatiedatum                *date.Date     `json:"creatiedatum" validate:"required"`
	Titel                       string         `json:"titel" validate:"required,max=200"`
	Vertrouwelijkheidaanduiding string         `json:"vertrouwelijkheidaanduiding" validate:"omitempty,oneof=openbaar beperkt_openbaar intern zaakvertrouwelijk vertrouwelijk confidentieel geheim zeer_geheim"`
	Auteur                      string         `json:"auteur" validate:"required,max=200"`
	Status                      string         `json:"status" validate:"omitempty,oneof=in_bewerking ter_vaststelling definitief gearchiveerd"`
	Formaat                     string         `json:"formaat" validate:"max=255"`
	Taal                        string         `json:"taal" validate:"required,language"`
	Bestandsnaam                string         `json:"bestandsnaam" validate:"max=255"`
	Link                        string         `json:"link" validate:"omitempty,url,max=200"`
	Beschrijving                string         `json:"beschrijving" validate:"max=1000"`
	Ontvangstdatum              *date.Date     `json:"ontvangstdatum"`
	Verzenddatum                *date.Date     `json:"verzenddatum"`
	IndicatieGebruiksrecht      *bool          `json:"indicatieGebruiksrecht"`
	Ondertekening               *Ondertekening `json:"ondertekening"`
	Integriteit                 *Integriteit   `json:"integriteit"`
	Informatieobjecttype        string         `json:"informatieobjecttype" validate:"required,url,max=200"`
}

// Command is the body of a create or full update. Lock is required on
// update and ignored on create. A nil Inhoud keeps the current content.
type Command struct {
	Fields
	Inhoud *string `json:"inhoud"`
	Lock   string  `json:"lock"`
}

func (f Fields) withDefaults() Fields {
	if f.Vertrouwelijkheidaanduiding == "" {
		f.Vertrouwelijkheidaanduiding = DefaultVertrouwelijkheidaanduiding
	}
	return f
}

func fieldsOf(v *database.VersionInfo) Fields {
	creatiedatum := v.Creatiedatum
	f := Fields{
		Identificatie:               v.Identificatie,
		Bronorganisatie:             v.Bronorganisatie,
		Creatiedatum:                &creatiedatum,
		Titel:                       v.Titel,
		Vertrouwelijkheidaanduiding: v.Vertrouwelijkheidaanduiding,
		Auteur:                      v.Auteur,
		Status:                      v.Status,
		Formaat:                     v.Formaat,
		Taal:                        v.Taal,
		Bestandsnaam:                v.Bestandsnaam,
		Link:                        v.Link,
		Beschrijving:                v.Beschrijving,
		Ontvangstdatum:              v.Ontvangstdatum,
		Verzenddatum:                v.Verzenddatum,
		IndicatieGebruiksrecht:      v.IndicatieGebruiksrecht,
		Informatieobjecttype:        v.Informatieobjecttype,
	}
	if v.Ondertekening != nil {
		f.Ondertekening = &Ondertekening{Soort: v.Ondertekening.Soort, Datum: v.Ondertekening.Datum}
	}
	if v.Integriteit != nil {
		f.Integriteit = &Integriteit{
			Algoritme: v.Integriteit.Algoritme,
			Waarde:    v.Integriteit.Waarde,
			Datum:     v.Integriteit.Datum,
		}
	}
	return f
}

// applyTo overwrites the descriptive attributes of v with f.
func (f Fields) applyTo(v *database.VersionInfo) {
	v.Identificatie = f.Identificatie
	v.Bronorganisatie = f.Bronorganisatie
	if f.Creatiedatum != nil {
		v.Creatiedatum = *f.Creatiedatum
	}
	v.Titel = f.Titel
	v.Vertrouwelijkheidaanduiding = f.Vertrouwelijkheidaanduiding
	v.Auteur = f.Auteur
	v.Status = f.Status
	v.Formaat = f.Formaat
	v.Taal = f.Taal
	v.Bestandsnaam = f.Bestandsnaam
	v.Link = f.Link
	v.Beschrijving = f.Beschrijving
	v.Ontvangstdatum = f.Ontvangstdatum
	v.Verzenddatum = f.Verzenddatum
	v.IndicatieGebruiksrecht = f.IndicatieGebruiksrecht
	v.Informatieobjecttype = f.Informatieobjecttype

	v.Ondertekening = nil
	if f.Ondertekening != nil {
		v.Ondertekening = &database.Ondertekening{Soort: f.Ondertekening.Soort, Datum: f.Ondertekening.Datum}
	}
	v.Integriteit = nil
	if f.Integriteit != nil {
		v.Integriteit = &database.Integriteit{
			Algoritme: f.Integriteit.Algoritme,
			Waarde:    f.Integriteit.Waarde,
			Datum:     f.Integriteit.Datum,
		}
	}
}
