// Package services holds the domain rules: required fields, derived values,
// relation checks and the write policy. Every call receives the resolved
// principal explicitly; nil means anonymous.
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/media"
	"github.com/padraicbc/concursos/store"
)

// Options tunes the services. Zero values are replaced by defaults.
type Options struct {
	// RequireAdminWrites gates entity mutations on auth.IsAdmin.
	RequireAdminWrites bool
	SessionKey         []byte
	Roles              auth.Roles
	Now                func() time.Time
	NewID              func() string
	Logger             *zap.Logger
}

// Services bundles every domain service over one store.
type Services struct {
	Companies  *Companies
	Concursos  *Concursos
	Ganado     *Ganado
	Entries    *Entries
	Lookups    *Lookups
	Categorias *Categorias
	Images     *Images
	Stats      *Stats
	Users      *Users
}

type base struct {
	policy policy
	now    func() time.Time
	newID  func() string
	log    *zap.Logger
}

func New(st store.Store, storage media.Storage, opts Options) *Services {
	b := base{
		policy: policy{requireAdmin: opts.RequireAdminWrites},
		now:    opts.Now,
		newID:  opts.NewID,
		log:    opts.Logger,
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newID == nil {
		b.newID = uuid.NewString
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if storage == nil {
		storage = media.Disabled{}
	}

	entries := &Entries{base: b, store: st}
	return &Services{
		Companies:  &Companies{base: b, store: st},
		Concursos:  &Concursos{base: b, store: st},
		Ganado:     &Ganado{base: b, store: st, entries: entries, media: storage},
		Entries:    entries,
		Lookups:    &Lookups{base: b, store: st},
		Categorias: &Categorias{base: b, store: st},
		Images:     &Images{base: b, store: st, media: storage},
		Stats:      &Stats{base: b, store: st},
		Users:      &Users{base: b, store: st, key: opts.SessionKey, roles: opts.Roles},
	}
}

// policy decides who may write.
type policy struct {
	requireAdmin bool
}

// write is checked before every entity mutation.
func (p policy) write(pr *auth.Principal) error {
	if pr == nil {
		return errUnauthorized
	}
	if p.requireAdmin && !auth.IsAdmin(pr) {
		return errForbidden
	}
	return nil
}

// authenticated only needs a session.
func (p policy) authenticated(pr *auth.Principal) error {
	if pr == nil {
		return errUnauthorized
	}
	return nil
}

// Flex accepts a JSON string, number or null and keeps its text.
// Null and "" both decode to the empty Flex.
type Flex string

func (f *Flex) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Flex(strings.TrimSpace(s))
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err == nil {
		*f = Flex(n.String())
		return nil
	}

	return fmt.Errorf("expected string, number, or null")
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// parseDate accepts an ISO date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// optionalDate treats nil and "" as absent.
func optionalDate(s *string, field string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, ok := parseDate(*s)
	if !ok {
		return nil, invalid(field + " is invalid")
	}
	return &t, nil
}

// clean trims s and turns blanks into nil.
func clean(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// hasConcurso reports whether id names a concurso; "none" is the form's empty choice.
func hasConcurso(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && id != "none"
}
