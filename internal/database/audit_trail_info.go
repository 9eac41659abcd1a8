package database

import (
	"encoding/json"
	"time"
)

// AuditTrailInfo is one persisted audit entry. Oud and Nieuw hold the JSON
// snapshots before and after the change and are nil when absent.
type AuditTrailInfo struct {
	ID                 string
	DocumentID         string
	Bron               string
	ApplicatieID       string
	ApplicatieWeergave string
	GebruikersID       string
	GebruikersWeergave string
	Actie              string
	ActieWeergave      string
	Resultaat          int
	HoofdObject        string
	Resource           string
	ResourceURL        string
	ResourceWeergave   string
	Toelichting        string
	AanmaakDatum       time.Time
	Oud                json.RawMessage
	Nieuw              json.RawMessage
}

func (a *AuditTrailInfo) DeepCopy() *AuditTrailInfo {
	if a == nil {
		return nil
	}
	c := *a
	c.Oud = append(json.RawMessage(nil), a.Oud...)
	c.Nieuw = append(json.RawMessage(nil), a.Nieuw...)
	if a.Oud == nil {
		c.Oud = nil
	}
	if a.Nieuw == nil {
		c.Nieuw = nil
	}
	return &c
}
