package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/internal/database/memory"
	"github.com/JaimeStill/document-registry/internal/database/testcases"
)

func TestDB(t *testing.T) {
	db, err := memory.New()
	require.NoError(t, err)

	t.Run("VersionLifecycle test", func(t *testing.T) {
		testcases.RunVersionLifecycleTest(t, db)
	})

	t.Run("ListLatestVersions test", func(t *testing.T) {
		testcases.RunListLatestVersionsTest(t, db)
	})

	t.Run("ConcurrentAppend test", func(t *testing.T) {
		testcases.RunConcurrentAppendTest(t, db)
	})

	t.Run("UpdateLock test", func(t *testing.T) {
		testcases.RunUpdateLockTest(t, db)
	})

	t.Run("Relations test", func(t *testing.T) {
		testcases.RunRelationsTest(t, db)
	})

	t.Run("UsageRights test", func(t *testing.T) {
		testcases.RunUsageRightsTest(t, db)
	})

	t.Run("AuditTrails test", func(t *testing.T) {
		testcases.RunAuditTrailsTest(t, db)
	})
}
