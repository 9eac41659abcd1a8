package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/internal/database/memory"
	"github.com/JaimeStill/document-registry/internal/database/testcases"
	"github.com/JaimeStill/document-registry/internal/locks"
)

func TestReleaseLock(t *testing.T) {
	ctx := context.Background()
	db, err := memory.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	doc, first := testcases.NewDocument("CLI-1")
	require.NoError(t, db.CreateDocument(ctx, doc, first))

	lm := locks.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	var out bytes.Buffer
	require.NoError(t, releaseLock(ctx, lm, doc.ID, "", true, &out))
	assert.Contains(t, out.String(), "is not locked")

	token, err := lm.Lock(ctx, doc.ID)
	require.NoError(t, err)

	out.Reset()
	err = releaseLock(ctx, lm, doc.ID, "wrong", false, &out)
	assert.ErrorIs(t, err, locks.ErrIncorrectLockID)
	assert.Empty(t, out.String())

	require.NoError(t, releaseLock(ctx, lm, doc.ID, token, false, &out))
	assert.Contains(t, out.String(), "unlocked")

	locked, err := lm.Status(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, locked)

	_, err = lm.Lock(ctx, doc.ID)
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, releaseLock(ctx, lm, doc.ID, "", true, &out))
	assert.Contains(t, out.String(), "unlocked")

	assert.ErrorIs(t, releaseLock(ctx, lm, "00000000-0000-0000-0000-000000000000", "", true, &out), locks.ErrNotFound)
}
