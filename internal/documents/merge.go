package documents

import (
	"github.com/JaimeStill/document-registry/pkg/date"
	"github.com/JaimeStill/document-registry/pkg/patch"
)

// PatchCommand is the body of a partial update. Absent members keep the
// value of the latest version; null clears optional members.
type PatchCommand struct {
	Identificatie               patch.Field[string]        `json:"identificatie"`
	Bronorganisatie             patch.Field[string]        `json:"bronorganisatie"`
	Creatiedatum                patch.Field[date.Date]     `json:"creatiedatum"`
	Titel                       patch.Field[string]        `json:"titel"`
	Vertrouwelijkheidaanduiding patch.Field[string]        `json:"vertrouwelijkheidaanduiding"`
	Auteur                      patch.Field[string]        `json:"auteur"`
	Status                      patch.Field[string]        `json:"status"`
	Formaat                     patch.Field[string]        `json:"formaat"`
	Taal                        patch.Field[string]        `json:"taal"`
	Bestandsnaam                patch.Field[string]        `json:"bestandsnaam"`
	Link                        patch.Field[string]        `json:"link"`
	Beschrijving                patch.Field[string]        `json:"beschrijving"`
	Ontvangstdatum              patch.Field[date.Date]     `json:"ontvangstdatum"`
	Verzenddatum                patch.Field[date.Date]     `json:"verzenddatum"`
	IndicatieGebruiksrecht      patch.Field[bool]          `json:"indicatieGebruiksrecht"`
	Ondertekening               patch.Field[Ondertekening] `json:"ondertekening"`
	Integriteit                 patch.Field[Integriteit]   `json:"integriteit"`
	Informatieobjecttype        patch.Field[string]        `json:"informatieobjecttype"`

	Inhoud patch.Field[string] `json:"inhoud"`
	Lock   string              `json:"lock"`
}

// Merge copies previous forward and overlays every member present in p.
// It does not modify previous.
func Merge(previous Fields, p PatchCommand) Fields {
	return Fields{
		Identificatie:               p.Identificatie.Apply(previous.Identificatie),
		Bronorganisatie:             p.Bronorganisatie.Apply(previous.Bronorganisatie),
		Creatiedatum:                p.Creatiedatum.ApplyPtr(previous.Creatiedatum),
		Titel:                       p.Titel.Apply(previous.Titel),
		Vertrouwelijkheidaanduiding: p.Vertrouwelijkheidaanduiding.Apply(previous.Vertrouwelijkheidaanduiding),
		Auteur:                      p.Auteur.Apply(previous.Auteur),
		Status:                      p.Status.Apply(previous.Status),
		Formaat:                     p.Formaat.Apply(previous.Formaat),
		Taal:                        p.Taal.Apply(previous.Taal),
		Bestandsnaam:                p.Bestandsnaam.Apply(previous.Bestandsnaam),
		Link:                        p.Link.Apply(previous.Link),
		Beschrijving:                p.Beschrijving.Apply(previous.Beschrijving),
		Ontvangstdatum:              p.Ontvangstdatum.ApplyPtr(previous.Ontvangstdatum),
		Verzenddatum:                p.Verzenddatum.ApplyPtr(previous.Verzenddatum),
		IndicatieGebruiksrecht:      p.IndicatieGebruiksrecht.ApplyPtr(previous.IndicatieGebruiksrecht),
		Ondertekening:               p.Ondertekening.ApplyPtr(previous.Ondertekening),
		Integriteit:                 p.Integriteit.ApplyPtr(previous.Integriteit),
		Informatieobjecttype:        p.Informatieobjecttype.Apply(previous.Informatieobjecttype),
	}
}

// content returns the replacement content of the patch, or nil to keep
// the current content.
func (p PatchCommand) content() *string {
	if !p.Inhoud.Set || p.Inhoud.Null {
		return nil
	}
	v := p.Inhoud.Value
	return &v
}

func (p PatchCommand) formaatSupplied() bool {
	return p.Formaat.Set && p.Formaat.Value != ""
}
