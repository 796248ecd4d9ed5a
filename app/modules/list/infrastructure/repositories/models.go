package listdb

import (
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	"github.com/uptrace/bun"
)

// ManifestEntry places one level path at a position in the list.
type ManifestEntry struct {
	bun.BaseModel `bun:"table:list_manifest,alias:lm"`

	Position int    `bun:"position,pk"` // 0 is the hardest level
	Path     string `bun:"path,notnull,unique"`
}

// LevelDocument stores a level document verbatim as jsonb.
type LevelDocument struct {
	bun.BaseModel `bun:"table:list_levels,alias:ll"`

	Path      string           `bun:"path,pk"`
	Document  listdomain.Level `bun:"document,type:jsonb,notnull"`
	UpdatedAt time.Time        `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
