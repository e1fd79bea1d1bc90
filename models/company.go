package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Company is an organization that hosts concursos.
type Company struct {
	bun.BaseModel `bun:"table:companies,alias:co"`

	ID          string    `bun:"id,pk,type:varchar(36)" json:"id"`
	Nombre      string    `bun:"nombre,notnull" json:"nombre"`
	Descripcion *string   `bun:"descripcion,type:text" json:"descripcion"`
	Slug        string    `bun:"slug,notnull,unique,type:varchar(191)" json:"slug"`
	Logo        *string   `bun:"logo" json:"logo"`
	IsFeatured  bool      `bun:"is_featured,notnull,default:false" json:"isFeatured"`
	IsPublished bool      `bun:"is_published,notnull,default:false" json:"isPublished"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`

	Concursos []Concurso `bun:"rel:has-many,join:id=company_id" json:"concursos,omitempty"`
}
