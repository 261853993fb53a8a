// Package gallery resolves the technical schematics bundled with the app and
// manages the images users add on top of them.
package gallery

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/domain/models"
	"github.com/mamadbah2/railtools/internal/repository/kv"
)

// UserImagesKey is the key user added images are persisted under.
const UserImagesKey = "@schemas_user_images"

var (
	// ErrNoImages is returned when a theme or category has nothing to show.
	ErrNoImages = errors.New("no images available")
	// ErrBundledImage is returned when a delete targets a bundled schematic.
	ErrBundledImage = errors.New("cannot delete bundled image")
	// ErrImageNotFound is returned when a delete targets nothing.
	ErrImageNotFound = errors.New("image not found")
)

//go:embed manifest.json
var manifestJSON []byte

var themeToManifest = map[string]string{
	models.ThemeRail:           "VIAS",
	models.ThemeBallast:        "Balastro",
	models.ThemeSleepers:       "fixacoes_travessa_madeira_54",
	models.ThemeCurves:         "calculo_flechas_raios",
	models.ThemeSuperelevation: "Escalas",
	models.ThemeLevelCrossing:  "PNs",
	models.ThemeFixations:      "fixacao_tbb_02",
	models.ThemeConverter:      "Escalas",
	models.ThemeBLSTotal:       "Balastro",
	models.ThemeCatenary:       "forca_centrifuga",
	models.ThemeSignaling:      "PNs",
}

var categoryToManifests = map[string][]string{
	"track":      {"Balastro", "VIAS", "travessa_madeira_via", "fixacoes_travessa_madeira_54"},
	"catenary":   {"forca_centrifuga", "PGV"},
	"components": {"fixacao_tbb_02", "fixacao_tbb_03", "fixacoes_travessa_madeira_54"},
	"signaling":  {"PNs"},
}

// Categories lists the schema categories in display order.
func Categories() []string {
	return []string{"track", "catenary", "components", "signaling"}
}

// Manifest maps a manifest key to its ordered bundled asset ids.
type Manifest map[string][]string

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse image manifest: %w", err)
	}
	return m, nil
}

// Service answers gallery lookups. Bundled images always precede user images.
type Service struct {
	manifest Manifest
	store    kv.Store
	logger   *zap.Logger

	mu         sync.Mutex
	userImages []models.GalleryImageRef
}

// NewService wires a gallery service over the embedded manifest.
func NewService(store kv.Store, logger *zap.Logger) (*Service, error) {
	manifest, err := ParseManifest(manifestJSON)
	if err != nil {
		return nil, err
	}
	return NewServiceWithManifest(manifest, store, logger), nil
}

// NewServiceWithManifest wires a gallery service over an explicit manifest.
func NewServiceWithManifest(manifest Manifest, store kv.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{manifest: manifest, store: store, logger: logger}
}

// Load reads the persisted user images. A failure leaves the list empty.
func (s *Service) Load(ctx context.Context) error {
	var stored []models.GalleryImageRef
	_, err := kv.LoadJSON(ctx, s.store, UserImagesKey, &stored)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.userImages = nil
		s.logger.Warn("failed to load user images", zap.Error(err))
		return err
	}
	s.userImages = stored[:0:0]
	for _, ref := range stored {
		if ref.URI != "" {
			s.userImages = append(s.userImages, models.GalleryImageRef{URI: ref.URI})
		}
	}
	return nil
}

func (s *Service) bundled(keys ...string) []models.GalleryImageRef {
	var refs []models.GalleryImageRef
	for _, key := range keys {
		for _, asset := range s.manifest[key] {
			refs = append(refs, models.GalleryImageRef{Asset: asset})
		}
	}
	return refs
}

func (s *Service) allKeys() []string {
	keys := make([]string, 0, len(s.manifest))
	for k := range s.manifest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// bundledFor returns the bundled refs shown for a category. An empty category
// means the full schemas grid.
func (s *Service) bundledFor(category string) []models.GalleryImageRef {
	if category == "" {
		return s.bundled(s.allKeys()...)
	}
	return s.bundled(categoryToManifests[category]...)
}

// ResolveTheme returns the bundled schematics for a calculation theme.
func (s *Service) ResolveTheme(themeID string) ([]models.GalleryImageRef, error) {
	key, ok := themeToManifest[themeID]
	if !ok {
		return nil, fmt.Errorf("theme %q: %w", themeID, ErrNoImages)
	}
	refs := s.bundled(key)
	if len(refs) == 0 {
		return nil, fmt.Errorf("theme %q: %w", themeID, ErrNoImages)
	}
	return refs, nil
}

// ResolveCategory returns the bundled schematics of a category followed by the
// user images.
func (s *Service) ResolveCategory(category string) ([]models.GalleryImageRef, error) {
	refs := s.bundled(categoryToManifests[category]...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(refs) == 0 && len(s.userImages) == 0 {
		return nil, fmt.Errorf("category %q: %w", category, ErrNoImages)
	}
	return append(refs, s.userImages...), nil
}

// All returns every bundled schematic followed by the user images.
func (s *Service) All() []models.GalleryImageRef {
	refs := s.bundledFor("")

	s.mu.Lock()
	defer s.mu.Unlock()
	return append(refs, s.userImages...)
}

// UserImages returns a copy of the user added images.
func (s *Service) UserImages() []models.GalleryImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.GalleryImageRef(nil), s.userImages...)
}

// AddUserImages appends images to the user list and persists it. Blank uris
// are ignored.
func (s *Service) AddUserImages(ctx context.Context, uris ...string) []models.GalleryImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.GalleryImageRef(nil), s.userImages...)
	for _, uri := range uris {
		uri = strings.TrimSpace(uri)
		if uri == "" {
			continue
		}
		next = append(next, models.GalleryImageRef{URI: uri})
	}
	s.commit(ctx, next)
	return append([]models.GalleryImageRef(nil), s.userImages...)
}

// ClearUserImages removes every user image.
func (s *Service) ClearUserImages(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, []models.GalleryImageRef{})
}

// DeleteUserImage removes the user image with the given uri from the
// category's combined sequence.
func (s *Service) DeleteUserImage(ctx context.Context, category, uri string) error {
	base := s.bundledFor(category)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ref := range base {
		if ref.Key() == uri {
			return fmt.Errorf("image %d: %w", i, ErrBundledImage)
		}
	}
	for i, ref := range s.userImages {
		if ref.URI == uri {
			return s.removeAt(ctx, i)
		}
	}
	return fmt.Errorf("image %q: %w", uri, ErrImageNotFound)
}

// DeleteAt removes the image at index in the category's combined sequence.
// Indexes pointing at bundled schematics are rejected without any change.
func (s *Service) DeleteAt(ctx context.Context, category string, index int) error {
	baseCount := len(s.bundledFor(category))

	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= baseCount+len(s.userImages) {
		return fmt.Errorf("image %d: %w", index, ErrImageNotFound)
	}
	if index < baseCount {
		return fmt.Errorf("image %d: %w", index, ErrBundledImage)
	}
	return s.removeAt(ctx, index-baseCount)
}

// removeAt must be called with mu held.
func (s *Service) removeAt(ctx context.Context, userIndex int) error {
	next := make([]models.GalleryImageRef, 0, len(s.userImages)-1)
	next = append(next, s.userImages[:userIndex]...)
	next = append(next, s.userImages[userIndex+1:]...)
	s.commit(ctx, next)
	return nil
}

// commit must be called with mu held.
func (s *Service) commit(ctx context.Context, next []models.GalleryImageRef) {
	s.userImages = next
	if err := kv.SaveJSON(ctx, s.store, UserImagesKey, next); err != nil {
		s.logger.Error("failed to persist user images", zap.Int("count", len(next)), zap.Error(err))
	}
}
