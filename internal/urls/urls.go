// Package urls builds and resolves the absolute resource URLs the API
// exposes and accepts.
package urls

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Collection paths relative to the API base path.
const (
	Documents   = "/enkelvoudiginformatieobjecten"
	Relations   = "/objectinformatieobjecten"
	UsageRights = "/gebruiksrechten"
	AuditTrails = "/audittrails"
)

// Builder renders resource URLs under a fixed root.
type Builder struct {
	root string
}

// New creates a Builder rooted at baseURL joined with basePath, for
// example http://localhost:8000 and /api.
func New(baseURL, basePath string) Builder {
	return Builder{root: strings.TrimSuffix(baseURL, "/") + basePath}
}

// Root returns the URL all resource URLs start with.
func (b Builder) Root() string {
	return b.root
}

func (b Builder) Document(id string) string {
	return b.root + Documents + "/" + id
}

// Download links the content of the given version of a document.
func (b Builder) Download(id string, versie int) string {
	return b.Document(id) + "/download?versie=" + strconv.Itoa(versie)
}

func (b Builder) Relation(id string) string {
	return b.root + Relations + "/" + id
}

func (b Builder) UsageRight(id string) string {
	return b.root + UsageRights + "/" + id
}

func (b Builder) AuditTrail(documentID, id string) string {
	return b.Document(documentID) + AuditTrails + "/" + id
}

// DocumentID extracts the identity from a document URL. Only the path is
// compared so the same document may be referenced through another host.
func (b Builder) DocumentID(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	root, err := url.Parse(b.root)
	if err != nil {
		return "", false
	}

	prefix := strings.TrimSuffix(root.Path, "/") + Documents + "/"
	rest, ok := strings.CutPrefix(strings.TrimSuffix(u.Path, "/"), prefix)
	if !ok || strings.Contains(rest, "/") {
		return "", false
	}

	id, err := uuid.Parse(rest)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
