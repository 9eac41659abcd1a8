package documents

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JaimeStill/document-registry/internal/database"
)

const contentTypePDF = "application/pdf"

// UploadLimits bounds the decoded size of inhoud. Zero disables a bound.
type UploadLimits struct {
	Min int64
	Max int64
}

// content is a stored blob that a version can reference.
type content struct {
	key     string
	size    int64
	formaat string
	paginas *int
}

// applyTo points v at the content. The detected format replaces formaat
// unless the client supplied one with this content.
func (c *content) applyTo(v *database.VersionInfo, formaatSupplied bool) {
	if c == nil {
		return
	}
	v.ContentKey = c.key
	v.Bestandsomvang = c.size
	v.Paginas = c.paginas
	if !formaatSupplied {
		v.Formaat = c.formaat
	}
}

// decode checks the encoding and size of inhoud.
func (s *service) decode(inhoud string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(inhoud)
	if err != nil {
		return nil, ErrInvalidContent.Wrap(err)
	}
	size := int64(len(data))
	if s.limits.Min > 0 && size < s.limits.Min {
		return nil, ErrContentTooSmall
	}
	if s.limits.Max > 0 && size > s.limits.Max {
		return nil, ErrContentTooLarge
	}
	return data, nil
}

// storeContent writes inhoud under a key owned by the document. A nil
// inhoud stores nothing and returns nil.
func (s *service) storeContent(ctx context.Context, documentID string, inhoud *string) (*content, error) {
	if inhoud == nil {
		return nil, nil
	}

	data, err := s.decode(*inhoud)
	if err != nil {
		return nil, err
	}

	c := &content{
		key:     documentID + "/" + uuid.NewString(),
		formaat: http.DetectContentType(data),
	}
	if c.formaat == contentTypePDF {
		c.paginas = s.pageCount(data)
	}

	size, err := s.store.Store(ctx, c.key, bytes.NewReader(data))
	if err != nil {
		return nil, mapStorageError("store content", err)
	}
	c.size = size

	s.logger.Debug("content stored", "key", c.key, "size", size, "formaat", c.formaat)
	return c, nil
}

// discard removes content that no version ended up referencing.
func (s *service) discard(ctx context.Context, c *content) {
	if c == nil {
		return
	}
	if err := s.store.Delete(context.WithoutCancel(ctx), c.key); err != nil {
		s.logger.Warn("discard content", "key", c.key, "error", err)
	}
}

func (s *service) pageCount(data []byte) *int {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		s.logger.Warn("failed to extract pdf page count", "error", err)
		return nil
	}
	return &count
}
