package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Concurso is a contest event owned by a Company.
type Concurso struct {
	bun.BaseModel `bun:"table:concursos,alias:con"`

	ID          string     `bun:"id,pk,type:varchar(36)" json:"id"`
	Nombre      string     `bun:"nombre,notnull" json:"nombre"`
	Descripcion *string    `bun:"descripcion,type:text" json:"descripcion"`
	FechaInicio time.Time  `bun:"fecha_inicio,notnull" json:"fechaInicio"`
	FechaFin    *time.Time `bun:"fecha_fin" json:"fechaFin"`
	CompanyID   string     `bun:"company_id,notnull,type:varchar(36)" json:"companyId"`
	IsFeatured  bool       `bun:"is_featured,notnull,default:false" json:"isFeatured"`
	IsPublished bool       `bun:"is_published,notnull,default:false" json:"isPublished"`
	CreatedAt   time.Time  `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull" json:"updatedAt"`

	Company *Company           `bun:"rel:belongs-to,join:company_id=id" json:"company,omitempty"`
	Entries []GanadoEnConcurso `bun:"rel:has-many,join:id=concurso_id" json:"ganadoEnConcurso,omitempty"`
}
