package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Sexo is the sex of a livestock record.
type Sexo string

const (
	SexoMacho  Sexo = "MACHO"
	SexoHembra Sexo = "HEMBRA"
)

// Valid reports whether s is one of the known values.
func (s Sexo) Valid() bool {
	return s == SexoMacho || s == SexoHembra
}

// Ganado is a livestock record, independent of any concurso.
type Ganado struct {
	bun.BaseModel `bun:"table:ganado,alias:g"`

	ID           string     `bun:"id,pk,type:varchar(36)" json:"id"`
	Nombre       string     `bun:"nombre,notnull" json:"nombre"`
	FechaNac     *time.Time `bun:"fecha_nac" json:"fechaNac"`
	DiasNacida   *int       `bun:"dias_nacida" json:"diasNacida"`
	Categoria    *string    `bun:"categoria" json:"categoria"`
	Subcategoria *string    `bun:"subcategoria" json:"subcategoria"`
	Establo      *string    `bun:"establo" json:"establo"`
	Remate       bool       `bun:"remate,notnull,default:false" json:"remate"`
	Propietario  *string    `bun:"propietario" json:"propietario"`
	Descripcion  *string    `bun:"descripcion,type:text" json:"descripcion"`
	Raza         *string    `bun:"raza" json:"raza"`
	Sexo         Sexo       `bun:"sexo,notnull,type:varchar(10)" json:"sexo"`
	NumRegistro  *string    `bun:"num_registro" json:"numRegistro"`
	Puntaje      *float64   `bun:"puntaje" json:"puntaje"`
	IsFeatured   bool       `bun:"is_featured,notnull,default:false" json:"isFeatured"`
	IsPublished  bool       `bun:"is_published,notnull,default:false" json:"isPublished"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull" json:"updatedAt"`

	Entries []GanadoEnConcurso `bun:"rel:has-many,join:id=ganado_id" json:"ganadoEnConcurso,omitempty"`
	Images  []GanadoImage      `bun:"rel:has-many,join:id=ganado_id" json:"images,omitempty"`
}
