package usagerights

import (
	"time"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/pkg/patch"
)

// UsageRight is the API representation of a gebruiksrecht.
type UsageRight struct {
	URL                     string     `json:"url"`
	Informatieobject        string     `json:"informatieobject"`
	Startdatum              time.Time  `json:"startdatum"`
	Einddatum               *time.Time `json:"einddatum"`
	OmschrijvingVoorwaarden string     `json:"omschrijvingVoorwaarden"`
}

// Command is the body of a create or full update.
type Command struct {
	Informatieobject        string     `json:"informatieobject" validate:"required,url"`
	Startdatum              *time.Time `json:"startdatum" validate:"required"`
	Einddatum               *time.Time `json:"einddatum"`
	OmschrijvingVoorwaarden string     `json:"omschrijvingVoorwaarden" validate:"required"`
}

// PatchCommand is the body of a partial update.
type PatchCommand struct {
	Informatieobject        patch.Field[string]    `json:"informatieobject"`
	Startdatum              patch.Field[time.Time] `json:"startdatum"`
	Einddatum               patch.Field[time.Time] `json:"einddatum"`
	OmschrijvingVoorwaarden patch.Field[string]    `json:"omschrijvingVoorwaarden"`
}

// apply overlays p on the current state and returns the full command.
func (p PatchCommand) apply(current UsageRight) Command {
	start := p.Startdatum.ApplyPtr(&current.Startdatum)
	return Command{
		Informatieobject:        p.Informatieobject.Apply(current.Informatieobject),
		Startdatum:              start,
		Einddatum:               p.Einddatum.ApplyPtr(current.Einddatum),
		OmschrijvingVoorwaarden: p.OmschrijvingVoorwaarden.Apply(current.OmschrijvingVoorwaarden),
	}
}

func toUsageRight(b urls.Builder, info *database.UsageRightInfo) UsageRight {
	u := UsageRight{
		URL:                     b.UsageRight(info.ID),
		Informatieobject:        b.Document(info.DocumentID),
		Startdatum:              info.Startdatum.UTC(),
		OmschrijvingVoorwaarden: info.OmschrijvingVoorwaarden,
	}
	if info.Einddatum != nil {
		end := info.Einddatum.UTC()
		u.Einddatum = &end
	}
	return u
}

func toInfo(id, documentID string, cmd Command) *database.UsageRightInfo {
	info := &database.UsageRightInfo{
		ID:                      id,
		DocumentID:              documentID,
		Startdatum:              cmd.Startdatum.UTC().Truncate(time.Microsecond),
		OmschrijvingVoorwaarden: cmd.OmschrijvingVoorwaarden,
	}
	if cmd.Einddatum != nil {
		end := cmd.Einddatum.UTC().Truncate(time.Microsecond)
		info.Einddatum = &end
	}
	return info
}
