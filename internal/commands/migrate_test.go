package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeOrdering(t *testing.T) {
	require.NotEmpty(t, scheme)

	last := 0
	for _, s := range scheme {
		assert.Equal(t, last+1, s.Index, "scheme indexes must be contiguous: %q", s.Description)
		assert.NotEmpty(t, s.Query)
		last = s.Index
	}
}

func TestSchemeDependencies(t *testing.T) {
	// Tables must be created before anything references them.
	created := make(map[string]int)
	for _, s := range scheme {
		for _, table := range []string{"department", "employees", "users", "attendance", "overtime_request", "leave_request"} {
			if strings.Contains(s.Query, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				created[table] = s.Index
			}
		}
	}

	require.Contains(t, created, "employees")
	require.Contains(t, created, "users")
	assert.Less(t, created["department"], created["employees"])
	assert.Less(t, created["employees"], created["users"])
	assert.Less(t, created["users"], created["attendance"])
	assert.Less(t, created["employees"], created["overtime_request"])
	assert.Less(t, created["employees"], created["leave_request"])
}
