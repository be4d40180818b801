package entity

import (
	"github.com/uptrace/bun"
)

type Department struct {
	bun.BaseModel `bun:"table:department"`

	BasicEntity
	Name        *string `json:"name"        bun:"name"`
	Description *string `json:"description" bun:"description"`
	ManagerID   *int    `json:"manager_id"  bun:"manager_id"`
	Active      *bool   `json:"active"      bun:"active"`
}
