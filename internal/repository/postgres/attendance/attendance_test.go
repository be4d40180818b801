package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovedCapQueryAggregates(t *testing.T) {
	// Several approved requests may exist for one employee and day; the cap
	// must be the largest grant, zero when none were approved, and never an
	// arbitrary row.
	assert.Contains(t, approvedCapQuery, "COALESCE(MAX(requested_hours), 0)")
	assert.Contains(t, approvedCapQuery, "deleted_at IS NULL")
	assert.Contains(t, approvedCapQuery, "status = $3")
}
