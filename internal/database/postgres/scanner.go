package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/date"
	"github.com/JaimeStill/document-registry/pkg/repository"
)

func scanVersion(s repository.Scanner) (*database.VersionInfo, error) {
	var (
		v         database.VersionInfo
		ondSoort  sql.NullString
		ondDatum  *date.Date
		intAlg    sql.NullString
		intWaarde sql.NullString
		intDatum  *date.Date
		lock      string
	)

	err := s.Scan(
		&v.DocumentID,
		&v.Versie,
		&v.BeginRegistratie,
		&v.Identificatie,
		&v.Bronorganisatie,
		&v.Creatiedatum,
		&v.Titel,
		&v.Vertrouwelijkheidaanduiding,
		&v.Auteur,
		&v.Status,
		&v.Formaat,
		&v.Taal,
		&v.Bestandsnaam,
		&v.Link,
		&v.Beschrijving,
		&v.Ontvangstdatum,
		&v.Verzenddatum,
		&ondSoort,
		&ondDatum,
		&intAlg,
		&intWaarde,
		&intDatum,
		&v.Informatieobjecttype,
		&v.ContentKey,
		&v.Bestandsomvang,
		&v.Paginas,
		&v.IndicatieGebruiksrecht,
		&lock,
	)
	if err != nil {
		return nil, err
	}

	if ondSoort.Valid {
		v.Ondertekening = &database.Ondertekening{Soort: ondSoort.String, Datum: ondDatum}
	}
	if intAlg.Valid {
		v.Integriteit = &database.Integriteit{Algoritme: intAlg.String, Waarde: intWaarde.String, Datum: intDatum}
	}
	v.BeginRegistratie = v.BeginRegistratie.UTC()
	v.Lock = lock
	v.Locked = lock != ""

	return &v, nil
}

func scanDocument(s repository.Scanner) (*database.DocumentInfo, error) {
	var d database.DocumentInfo
	err := s.Scan(
		&d.ID,
		&d.Lock,
		&d.LatestVersion,
		&d.IndicatieGebruiksrecht,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = d.CreatedAt.UTC()
	return &d, nil
}

func scanRelation(s repository.Scanner) (*database.RelationInfo, error) {
	var r database.RelationInfo
	err := s.Scan(
		&r.ID,
		&r.DocumentID,
		&r.Object,
		&r.ObjectType,
		&r.Titel,
		&r.Beschrijving,
		&r.Registratiedatum,
	)
	return &r, err
}

func scanUsageRight(s repository.Scanner) (*database.UsageRightInfo, error) {
	var u database.UsageRightInfo
	err := s.Scan(
		&u.ID,
		&u.DocumentID,
		&u.Startdatum,
		&u.Einddatum,
		&u.OmschrijvingVoorwaarden,
	)
	return &u, err
}

func scanAuditTrail(s repository.Scanner) (*database.AuditTrailInfo, error) {
	var (
		a          database.AuditTrailInfo
		oud, nieuw []byte
	)
	err := s.Scan(
		&a.ID,
		&a.DocumentID,
		&a.Bron,
		&a.ApplicatieID,
		&a.ApplicatieWeergave,
		&a.GebruikersID,
		&a.GebruikersWeergave,
		&a.Actie,
		&a.ActieWeergave,
		&a.Resultaat,
		&a.HoofdObject,
		&a.Resource,
		&a.ResourceURL,
		&a.ResourceWeergave,
		&a.Toelichting,
		&a.AanmaakDatum,
		&oud,
		&nieuw,
	)
	if err != nil {
		return nil, err
	}
	if oud != nil {
		a.Oud = json.RawMessage(oud)
	}
	if nieuw != nil {
		a.Nieuw = json.RawMessage(nieuw)
	}
	return &a, nil
}
