package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/media"
	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

var errStorageDisabled = &Error{Kind: KindUnavailable, Message: "Image storage is not configured"}

// Upload is one picture read from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.ReadSeeker
}

type Images struct {
	base
	store store.Store
	media media.Storage
}

// Add stores the picture and links it to the ganado.
func (s *Images) Add(ctx context.Context, p *auth.Principal, ganadoID string, up Upload) (*models.GanadoImage, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	if up.Body == nil {
		return nil, invalid("File is required")
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return nil, invalid("File must be an image")
	}
	if _, err := s.store.GetGanado(ctx, ganadoID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Ganado not found")
		}
		return nil, fmt.Errorf("get ganado: %w", err)
	}

	id := s.newID()
	key := "ganado/" + ganadoID + "/" + id + strings.ToLower(path.Ext(up.Filename))
	url, err := s.media.Put(ctx, key, up.Body, up.ContentType)
	if err != nil {
		if errors.Is(err, media.ErrDisabled) {
			return nil, errStorageDisabled
		}
		return nil, fmt.Errorf("put image: %w", err)
	}

	img := &models.GanadoImage{ID: id, GanadoID: ganadoID, URL: url, ObjectKey: key, CreatedAt: s.now()}
	if err := s.store.CreateImage(ctx, img); err != nil {
		if derr := s.media.Delete(ctx, key); derr != nil {
			s.log.Warn("delete orphaned image object", zap.String("key", key), zap.Error(derr))
		}
		if errors.Is(err, store.ErrReferenced) {
			return nil, notFound("Ganado not found")
		}
		return nil, fmt.Errorf("create image: %w", err)
	}
	return img, nil
}

// Remove deletes the image row and its stored object.
func (s *Images) Remove(ctx context.Context, p *auth.Principal, ganadoID, imageID string) (*models.GanadoImage, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	img, err := s.store.GetImage(ctx, imageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Image not found")
		}
		return nil, fmt.Errorf("get image: %w", err)
	}
	if img.GanadoID != ganadoID {
		return nil, notFound("Image not found")
	}
	if err := s.store.DeleteImage(ctx, imageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Image not found")
		}
		return nil, fmt.Errorf("delete image: %w", err)
	}
	if err := s.media.Delete(ctx, img.ObjectKey); err != nil && !errors.Is(err, media.ErrDisabled) {
		s.log.Warn("delete image object", zap.String("key", img.ObjectKey), zap.Error(err))
	}
	return img, nil
}
