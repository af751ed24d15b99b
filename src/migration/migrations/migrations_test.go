package migrations

import (
	"sort"
	"testing"
	"time"

	"github.com/chiru-cafe/chiru/src/migration/types"
	"github.com/stretchr/testify/assert"
)

func sortedVersions() []types.MigrationVersion {
	var versions []types.MigrationVersion
	for v := range All {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Before(versions[j])
	})
	return versions
}

func TestRegistry(t *testing.T) {
	versions := sortedVersions()
	assert.NotEmpty(t, versions)

	for _, v := range versions {
		m := All[v]
		assert.True(t, m.Version().Equal(v), "registered under a version other than its own")
		assert.NotEmpty(t, m.Name())
		assert.NotEmpty(t, m.Description())
		assert.False(t, v.IsZero())
	}

	// The map key guarantees uniqueness; also make sure the ordering is
	// strict so the runner never sees two equal versions.
	for i := 1; i < len(versions); i++ {
		assert.True(t, versions[i-1].Before(versions[i]))
	}
}

func TestExpectedSequence(t *testing.T) {
	versions := sortedVersions()
	if !assert.GreaterOrEqual(t, len(versions), 4) {
		return
	}

	assert.Equal(t, "Initial", All[versions[0]].Name())
	assert.Equal(t, "AddUsersAndSessions", All[versions[1]].Name())
	assert.Equal(t, "AddBansAndPostIP", All[versions[2]].Name())
	assert.Equal(t, "AddReplies", All[versions[3]].Name())

	assert.True(t, All[versions[0]].Version().Equal(
		types.MigrationVersion(time.Date(2022, 5, 14, 19, 2, 31, 0, time.UTC)),
	))
}
