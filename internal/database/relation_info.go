package database

import "time"

// Object types a relation can point at.
const (
	ObjectTypeZaak    = "zaak"
	ObjectTypeBesluit = "besluit"
)

// RelationInfo links a document to an object held by another registry.
// Titel, Beschrijving and Registratiedatum are only set for zaak relations.
type RelationInfo struct {
	ID               string
	DocumentID       string
	Object           string
	ObjectType       string
	Titel            string
	Beschrijving     string
	Registratiedatum *time.Time
}

func (r *RelationInfo) DeepCopy() *RelationInfo {
	if r == nil {
		return nil
	}
	c := *r
	c.Registratiedatum = copyPtr(r.Registratiedatum)
	return &c
}

// RelationFilter narrows ListRelations. Nil fields do not filter.
type RelationFilter struct {
	Object     *string
	DocumentID *string
}
