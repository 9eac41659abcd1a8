// Package remote asks the zaken and besluiten APIs whether they still hold
// the mirror of an object relation.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JaimeStill/document-registry/internal/auth"
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

// ErrBadObjectURL is returned when the object URL does not point at a zaak or besluit.
var ErrBadObjectURL = faults.Validation("object", "bad-url", "the object URL does not identify a zaak or besluit")

// Oracle reports whether the remote side of a relation exists.
type Oracle interface {
	RelationExists(ctx context.Context, rel *database.RelationInfo, documentURL string) (bool, error)
}

// mirror describes where a remote registry keeps its side of a relation.
type mirror struct {
	segment  string
	resource string
	param    string
}

var mirrors = map[string]mirror{
	database.ObjectTypeZaak:    {segment: "zaken", resource: "zaakinformatieobjecten", param: "zaak"},
	database.ObjectTypeBesluit: {segment: "besluiten", resource: "besluitinformatieobjecten", param: "besluit"},
}

// MirrorURL derives the list endpoint that holds the mirror of a relation
// from the object URL, e.g. .../api/v1/zaken/{uuid} becomes
// .../api/v1/zaakinformatieobjecten?zaak=...&informatieobject=....
func MirrorURL(objectType, object, documentURL string) (string, error) {
	m, ok := mirrors[objectType]
	if !ok {
		return "", ErrBadObjectURL
	}

	u, err := url.Parse(object)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", ErrBadObjectURL
	}

	marker := "/" + m.segment + "/"
	idx := strings.LastIndex(u.Path, marker)
	if idx < 0 || strings.Trim(u.Path[idx+len(marker):], "/") == "" {
		return "", ErrBadObjectURL
	}

	root := *u
	root.Path = u.Path[:idx] + "/" + m.resource
	root.RawPath = ""
	root.Fragment = ""

	q := url.Values{}
	q.Set(m.param, object)
	q.Set("informatieobject", documentURL)
	root.RawQuery = q.Encode()

	return root.String(), nil
}

// Client queries the remote registries over HTTP.
type Client struct {
	cfg    *config.RemoteConfig
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client. A disabled configuration yields a client that
// reports every mirror as absent without network access.
func New(cfg *config.RemoteConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.TimeoutDuration()},
		logger: logger.With("system", "remote"),
	}
}

func (c *Client) RelationExists(ctx context.Context, rel *database.RelationInfo, documentURL string) (bool, error) {
	if !c.cfg.Enabled {
		return false, nil
	}

	target, err := MirrorURL(rel.ObjectType, rel.Object, documentURL)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, faults.Backend("build mirror request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	token, err := auth.Sign(c.cfg.ClientCredentials, time.Now())
	if err != nil {
		return false, faults.Backend("sign mirror request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, faults.Backend("query mirror %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, faults.Backend("query mirror %s: %w", target, fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return false, faults.Backend("decode mirror response: %w", err)
	}

	c.logger.Debug("mirror queried", "url", target, "count", len(items))
	return len(items) > 0, nil
}
