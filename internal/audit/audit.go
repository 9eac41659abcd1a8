package audit

import (
	"encoding/json"
	"time"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/urls"
)

// Bron identifies this registry as the source of audit entries.
const Bron = "DRC"

var actieWeergave = map[string]string{
	"create":         "Object aangemaakt",
	"update":         "Object bijgewerkt",
	"partial_update": "Object deels bijgewerkt",
	"destroy":        "Object verwijderd",
}

// Change describes one mutation to record. Oud and Nieuw are rendered as
// JSON and may be nil.
type Change struct {
	DocumentID       string
	Actie            string
	Resultaat        int
	Resource         string
	ResourceURL      string
	ResourceWeergave string
	Oud              any
	Nieuw            any
}

// Wijzigingen holds the representations before and after a change.
type Wijzigingen struct {
	Oud   json.RawMessage `json:"oud"`
	Nieuw json.RawMessage `json:"nieuw"`
}

// AuditTrail is the API representation of an audit entry.
type AuditTrail struct {
	URL                string      `json:"url"`
	UUID               string      `json:"uuid"`
	Bron               string      `json:"bron"`
	ApplicatieID       string      `json:"applicatieId"`
	ApplicatieWeergave string      `json:"applicatieWeergave"`
	GebruikersID       string      `json:"gebruikersId"`
	GebruikersWeergave string      `json:"gebruikersWeergave"`
	Actie              string      `json:"actie"`
	ActieWeergave      string      `json:"actieWeergave"`
	Resultaat          int         `json:"resultaat"`
	HoofdObject        string      `json:"hoofdObject"`
	Resource           string      `json:"resource"`
	ResourceURL        string      `json:"resourceUrl"`
	Toelichting        string      `json:"toelichting"`
	ResourceWeergave   string      `json:"resourceWeergave"`
	AanmaakDatum       time.Time   `json:"aanmaakdatum"`
	Wijzigingen        Wijzigingen `json:"wijzigingen"`
}

func toAuditTrail(b urls.Builder, a *database.AuditTrailInfo) AuditTrail {
	return AuditTrail{
		URL:                b.AuditTrail(a.DocumentID, a.ID),
		UUID:               a.ID,
		Bron:               a.Bron,
		ApplicatieID:       a.ApplicatieID,
		ApplicatieWeergave: a.ApplicatieWeergave,
		GebruikersID:       a.GebruikersID,
		GebruikersWeergave: a.GebruikersWeergave,
		Actie:              a.Actie,
		ActieWeergave:      a.ActieWeergave,
		Resultaat:          a.Resultaat,
		HoofdObject:        a.HoofdObject,
		Resource:           a.Resource,
		ResourceURL:        a.ResourceURL,
		Toelichting:        a.Toelichting,
		ResourceWeergave:   a.ResourceWeergave,
		AanmaakDatum:       a.AanmaakDatum,
		Wijzigingen:        Wijzigingen{Oud: a.Oud, Nieuw: a.Nieuw},
	}
}
