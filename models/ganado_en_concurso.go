package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GanadoEnConcurso assigns one Ganado to one Concurso with an optional rank.
// The (ganado_id, concurso_id) pair is unique.
type GanadoEnConcurso struct {
	bun.BaseModel `bun:"table:ganado_en_concurso,alias:gec"`

	ID         string    `bun:"id,pk,type:varchar(36)" json:"id"`
	GanadoID   string    `bun:"ganado_id,notnull,type:varchar(36),unique:ganado_en_concurso_no_dupes" json:"ganadoId"`
	ConcursoID string    `bun:"concurso_id,notnull,type:varchar(36),unique:ganado_en_concurso_no_dupes" json:"concursoId"`
	Posicion   *int      `bun:"posicion" json:"posicion"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updatedAt"`

	Ganado   *Ganado   `bun:"rel:belongs-to,join:ganado_id=id" json:"ganado,omitempty"`
	Concurso *Concurso `bun:"rel:belongs-to,join:concurso_id=id" json:"concurso,omitempty"`
}
