package relations

import (
	"time"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/urls"
)

// Relation kinds derived from the object type.
const (
	AardHoortBij = "hoort_bij"
	AardLegtVast = "legt_vast"
)

var aardWeergave = map[string]string{
	AardHoortBij: "Hoort bij, omgekeerd: kent",
	AardLegtVast: "Legt vast, omgekeerd: kan vastgelegd zijn als bewijs in",
}

// Variant is the object-type specific part of a relation.
type Variant interface {
	ObjectType() string
	AardRelatie() string
}

// ZaakRelation relates a document to a zaak.
type ZaakRelation struct {
	Titel            string
	Beschrijving     string
	Registratiedatum time.Time
}

func (ZaakRelation) ObjectType() string  { return database.ObjectTypeZaak }
func (ZaakRelation) AardRelatie() string { return AardHoortBij }

// BesluitRelation relates a document to a besluit. It carries no attributes.
type BesluitRelation struct{}

func (BesluitRelation) ObjectType() string  { return database.ObjectTypeBesluit }
func (BesluitRelation) AardRelatie() string { return AardLegtVast }

// CreateCommand is the body of a relation create request. Titel and
// Beschrijving are ignored for besluit relations.
type CreateCommand struct {
	Informatieobject string  `json:"informatieobject" validate:"required,url"`
	Object           string  `json:"object" validate:"required,url,max=200"`
	ObjectType       string  `json:"objectType" validate:"required,oneof=zaak besluit"`
	Titel            *string `json:"titel" validate:"omitempty,max=200"`
	Beschrijving     *string `json:"beschrijving"`
}

// Relation is the API representation of an object relation.
type Relation struct {
	URL                 string     `json:"url"`
	Informatieobject    string     `json:"informatieobject"`
	Object              string     `json:"object"`
	ObjectType          string     `json:"objectType"`
	AardRelatieWeergave string     `json:"aardRelatieWeergave"`
	Titel               *string    `json:"titel,omitempty"`
	Beschrijving        *string    `json:"beschrijving,omitempty"`
	Registratiedatum    *time.Time `json:"registratiedatum,omitempty"`
}

// variantOf rebuilds the variant from a stored relation.
func variantOf(info *database.RelationInfo) Variant {
	if info.ObjectType == database.ObjectTypeBesluit {
		return BesluitRelation{}
	}
	z := ZaakRelation{Titel: info.Titel, Beschrijving: info.Beschrijving}
	if info.Registratiedatum != nil {
		z.Registratiedatum = *info.Registratiedatum
	}
	return z
}

// newVariant builds the variant of a create command; zaak-only fields of a
// besluit relation are dropped.
func newVariant(cmd CreateCommand, now time.Time) Variant {
	if cmd.ObjectType == database.ObjectTypeBesluit {
		return BesluitRelation{}
	}
	z := ZaakRelation{Registratiedatum: now}
	if cmd.Titel != nil {
		z.Titel = *cmd.Titel
	}
	if cmd.Beschrijving != nil {
		z.Beschrijving = *cmd.Beschrijving
	}
	return z
}

func toInfo(id, documentID, object string, v Variant) *database.RelationInfo {
	info := &database.RelationInfo{
		ID:         id,
		DocumentID: documentID,
		Object:     object,
		ObjectType: v.ObjectType(),
	}
	if z, ok := v.(ZaakRelation); ok {
		info.Titel = z.Titel
		info.Beschrijving = z.Beschrijving
		registratie := z.Registratiedatum
		info.Registratiedatum = &registratie
	}
	return info
}

func toRelation(b urls.Builder, info *database.RelationInfo) Relation {
	v := variantOf(info)
	r := Relation{
		URL:                 b.Relation(info.ID),
		Informatieobject:    b.Document(info.DocumentID),
		Object:              info.Object,
		ObjectType:          v.ObjectType(),
		AardRelatieWeergave: aardWeergave[v.AardRelatie()],
	}
	if z, ok := v.(ZaakRelation); ok {
		r.Titel = &z.Titel
		r.Beschrijving = &z.Beschrijving
		registratie := z.Registratiedatum.UTC()
		r.Registratiedatum = &registratie
	}
	return r
}
