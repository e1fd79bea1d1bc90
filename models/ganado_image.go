package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GanadoImage is a stored picture of a Ganado.
type GanadoImage struct {
	bun.BaseModel `bun:"table:ganado_images,alias:gi"`

	ID        string    `bun:"id,pk,type:varchar(36)" json:"id"`
	GanadoID  string    `bun:"ganado_id,notnull,type:varchar(36)" json:"ganadoId"`
	URL       string    `bun:"url,notnull" json:"url"`
	ObjectKey string    `bun:"object_key,notnull" json:"-"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}
