package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Categoria classifies ganado (A "Dientes de Leche" ... E "Boca Llena").
type Categoria struct {
	bun.BaseModel `bun:"table:categorias,alias:cat"`

	ID          string    `bun:"id,pk,type:varchar(36)" json:"id"`
	Codigo      string    `bun:"codigo,notnull,unique,type:varchar(32)" json:"codigo"`
	Nombre      string    `bun:"nombre,notnull" json:"nombre"`
	Descripcion *string   `bun:"descripcion,type:text" json:"descripcion"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}
