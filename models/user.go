package models

import "github.com/uptrace/bun"

// User is a local identity with a bcrypt-hashed password and a role.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       string `bun:"id,pk,type:varchar(36)" json:"id"`
	Username string `bun:"username,notnull,unique,type:varchar(191)" json:"username"`
	Password string `bun:"password,notnull" json:"-"`
	Nombre   string `bun:"nombre" json:"nombre"`
	Email    string `bun:"email" json:"email"`
	Role     string `bun:"role,notnull,default:'USER'" json:"role"`
}
