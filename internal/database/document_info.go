package database

import (
	"time"

	"github.com/JaimeStill/document-registry/pkg/date"
)

// DocumentInfo is the identity row of a document.
type DocumentInfo struct {
	ID string

	// Lock is the active checkout token. Empty means unlocked.
	Lock string

	LatestVersion int

	// IndicatieGebruiksrecht is nil when unknown.
	IndicatieGebruiksrecht *bool

	CreatedAt time.Time
}

// DeepCopy returns a copy that shares no pointers with d.
func (d *DocumentInfo) DeepCopy() *DocumentInfo {
	if d == nil {
		return nil
	}
	c := *d
	c.IndicatieGebruiksrecht = copyPtr(d.IndicatieGebruiksrecht)
	return &c
}

// Ondertekening describes how the document was signed.
type Ondertekening struct {
	Soort string
	Datum *date.Date
}

// Integriteit carries a checksum of the content.
type Integriteit struct {
	Algoritme string
	Waarde    string
	Datum     *date.Date
}

// VersionInfo is one immutable version of a document. IndicatieGebruiksrecht,
// Lock and Locked mirror the identity row at read time.
type VersionInfo struct {
	DocumentID       string
	Versie           int
	BeginRegistratie time.Time

	Identificatie               string
	Bronorganisatie             string
	Creatiedatum                date.Date
	Titel                       string
	Vertrouwelijkheidaanduiding string
	Auteur                      string
	Status                      string
	Formaat                     string
	Taal                        string
	Bestandsnaam                string
	Link                        string
	Beschrijving                string
	Ontvangstdatum              *date.Date
	Verzenddatum                *date.Date
	Ondertekening               *Ondertekening
	Integriteit                 *Integriteit
	Informatieobjecttype        string

	ContentKey     string
	Bestandsomvang int64
	Paginas        *int

	IndicatieGebruiksrecht *bool
	Lock                   string
	Locked                 bool
}

// DeepCopy returns a copy that shares no pointers with v.
func (v *VersionInfo) DeepCopy() *VersionInfo {
	if v == nil {
		return nil
	}
	c := *v
	c.Ontvangstdatum = copyPtr(v.Ontvangstdatum)
	c.Verzenddatum = copyPtr(v.Verzenddatum)
	c.Paginas = copyPtr(v.Paginas)
	c.IndicatieGebruiksrecht = copyPtr(v.IndicatieGebruiksrecht)
	if v.Ondertekening != nil {
		o := *v.Ondertekening
		o.Datum = copyPtr(v.Ondertekening.Datum)
		c.Ondertekening = &o
	}
	if v.Integriteit != nil {
		i := *v.Integriteit
		i.Datum = copyPtr(v.Integriteit.Datum)
		c.Integriteit = &i
	}
	return &c
}

// UniqueRepresentation identifies the document for humans.
func (v *VersionInfo) UniqueRepresentation() string {
	return v.Bronorganisatie + " - " + v.Identificatie
}

// VersionFilter narrows ListLatestVersions. Nil fields do not filter.
type VersionFilter struct {
	Identificatie   *string
	Bronorganisatie *string
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
