// Package documents is the document registry service. It sequences the
// lock manager, the version store and the content store into the create,
// update, delete, lock, unlock and download use cases.
package documents

import (
	"time"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/pkg/date"
)

// Status values of a document.
const (
	StatusInBewerking     = "in_bewerking"
	StatusTerVaststelling = "ter_vaststelling"
	StatusDefinitief      = "definitief"
	StatusGearchiveerd    = "gearchiveerd"
)

// Ondertekening describes how the document was signed.
type Ondertekening struct {
	Soort string     `json:"soort" validate:"omitempty,oneof=analoog digitaal pki"`
	Datum *date.Date `json:"datum"`
}

// Integriteit carries a checksum of the content.
type Integriteit struct {
	Algoritme string     `json:"algoritme" validate:"omitempty,oneof=crc_16 crc_32 crc_64 fletcher_4 fletcher_8 fletcher_16 fletcher_32 hmac md5 sha_1 sha_256 sha_512 sha_3"`
	Waarde    string     `json:"waarde" validate:"max=128"`
	Datum     *date.Date `json:"datum"`
}

// Document is the API representation of one version of a document.
type Document struct {
	URL                         string         `json:"url"`
	Identificatie               string         `json:"identificatie"`
	Bronorganisatie             string         `json:"bronorganisatie"`
	Creatiedatum                date.Date      `json:"creatiedatum"`
	Titel                       string         `json:"titel"`
	Vertrouwelijkheidaanduiding string         `json:"vertrouwelijkheidaanduiding"`
	Auteur                      string         `json:"auteur"`
	Status                      string         `json:"status"`
	Formaat                     string         `json:"formaat"`
	Taal                        string         `json:"taal"`
	Versie                      int            `json:"versie"`
	BeginRegistratie            time.Time      `json:"beginRegistratie"`
	Bestandsnaam                string         `json:"bestandsnaam"`
	Inhoud                      *string        `json:"inhoud"`
	Bestandsomvang              int64          `json:"bestandsomvang"`
	Paginas                     *int           `json:"paginas"`
	Link                        string         `json:"link"`
	Beschrijving                string         `json:"beschrijving"`
	Ontvangstdatum              *date.Date     `json:"ontvangstdatum"`
	Verzenddatum                *date.Date     `json:"verzenddatum"`
	IndicatieGebruiksrecht      *bool          `json:"indicatieGebruiksrecht"`
	Ondertekening               *Ondertekening `json:"ondertekening"`
	Integriteit                 *Integriteit   `json:"integriteit"`
	Informatieobjecttype        string         `json:"informatieobjecttype"`
	Locked                      bool           `json:"locked"`
}

func toDocument(b urls.Builder, v *database.VersionInfo) Document {
	d := Document{
		URL:                         b.Document(v.DocumentID),
		Identificatie:               v.Identificatie,
		Bronorganisatie:             v.Bronorganisatie,
		Creatiedatum:                v.Creatiedatum,
		Titel:                       v.Titel,
		Vertrouwelijkheidaanduiding: v.Vertrouwelijkheidaanduiding,
		Auteur:                      v.Auteur,
		Status:                      v.Status,
		Formaat:                     v.Formaat,
		Taal:                        v.Taal,
		Versie:                      v.Versie,
		BeginRegistratie:            v.BeginRegistratie.UTC(),
		Bestandsnaam:                v.Bestandsnaam,
		Bestandsomvang:              v.Bestandsomvang,
		Paginas:                     v.Paginas,
		Link:                        v.Link,
		Beschrijving:                v.Beschrijving,
		Ontvangstdatum:              v.Ontvangstdatum,
		Verzenddatum:                v.Verzenddatum,
		IndicatieGebruiksrecht:      v.IndicatieGebruiksrecht,
		Informatieobjecttype:        v.Informatieobjecttype,
		Locked:                      v.Locked,
	}
	if v.ContentKey != "" {
		download := b.Download(v.DocumentID, v.Versie)
		d.Inhoud = &download
	}
	if v.Ondertekening != nil {
		d.Ondertekening = &Ondertekening{Soort: v.Ondertekening.Soort, Datum: v.Ondertekening.Datum}
	}
	if v.Integriteit != nil {
		d.Integriteit = &Integriteit{
			Algoritme: v.Integriteit.Algoritme,
			Waarde:    v.Integriteit.Waarde,
			Datum:     v.Integriteit.Datum,
		}
	}
	return d
}
