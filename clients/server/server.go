// Package server exposes the booth over HTTP: photo upload, strip/print
// composition, size estimates, reference-data listings, and event config
// CRUD. It is a thin shell — all rendering lives in pkg/compose.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/snapbooth/snapbooth/pkg/compose"
	"github.com/snapbooth/snapbooth/pkg/eventstore"
	"github.com/snapbooth/snapbooth/pkg/eventstore/filesystem"
	"github.com/snapbooth/snapbooth/pkg/eventstore/memory"
	"github.com/snapbooth/snapbooth/pkg/export"
	"github.com/snapbooth/snapbooth/pkg/filter"
	"github.com/snapbooth/snapbooth/pkg/layout"
	"github.com/snapbooth/snapbooth/pkg/overlay"
	"github.com/snapbooth/snapbooth/pkg/style"
)

const maxUploadBytes = 32 << 20

// ── Photo manager ──

type photo struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Mime     string    `json:"mime"`
	Size     int       `json:"size"`
	Uploaded time.Time `json:"uploaded"`

	data []byte
}

// photoManager keeps uploaded captures in memory for the session, keyed by
// uuid. Kiosk sessions are short-lived; nothing is persisted.
type photoManager struct {
	mu     sync.RWMutex
	photos map[string]*photo
}

func newPhotoManager() *photoManager {
	return &photoManager{photos: make(map[string]*photo)}
}

func (pm *photoManager) add(name, mime string, data []byte) *photo {
	p := &photo{
		ID:       uuid.NewString(),
		Name:     name,
		Mime:     mime,
		Size:     len(data),
		Uploaded: time.Now(),
		data:     data,
	}
	pm.mu.Lock()
	pm.photos[p.ID] = p
	pm.mu.Unlock()
	return p
}

func (pm *photoManager) get(id string) (*photo, bool) {
	pm.mu.RLock()
	p, ok := pm.photos[id]
	pm.mu.RUnlock()
	return p, ok
}

func (pm *photoManager) list() []*photo {
	pm.mu.RLock()
	out := make([]*photo, 0, len(pm.photos))
	for _, p := range pm.photos {
		out = append(out, p)
	}
	pm.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Uploaded.Before(out[j].Uploaded) })
	return out
}

func (pm *photoManager) remove(id string) {
	pm.mu.Lock()
	delete(pm.photos, id)
	pm.mu.Unlock()
}

// ── Server ──

type srv struct {
	photos   *photoManager
	themes   style.ThemeRegistry
	overlays style.OverlayRegistry
	composer *compose.Composer
	events   eventstore.Store
}

// RunServe starts the booth API server. Flags: --port, --events-dir (empty
// keeps events in memory), --font (custom overlay TTF).
func RunServe(args []string) error {
	port := "8080"
	eventsDir := ""
	fontPath := ""
	for i, a := range args {
		if i+1 >= len(args) {
			break
		}
		switch a {
		case "--port", "-p":
			port = args[i+1]
		case "--events-dir":
			eventsDir = args[i+1]
		case "--font":
			fontPath = args[i+1]
		}
	}

	overlays := style.BuiltinOverlays()
	renderer, err := overlay.NewRenderer(overlays, fontPath)
	if err != nil {
		return fmt.Errorf("overlay renderer: %w", err)
	}

	var events eventstore.Store = memory.NewStore()
	if eventsDir != "" {
		events, err = filesystem.NewStore(eventsDir)
		if err != nil {
			return fmt.Errorf("event store: %w", err)
		}
	}

	s := &srv{
		photos:   newPhotoManager(),
		themes:   style.BuiltinThemes(),
		overlays: overlays,
		composer: compose.New(renderer),
		events:   events,
	}

	logrus.WithField("addr", ":"+port).Info("starting booth server")
	return http.ListenAndServe(":"+port, s.routes())
}

func (s *srv) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/photos", s.handleUploadPhoto)
		r.Get("/photos", s.handleListPhotos)
		r.Get("/photos/{id}", s.handleGetPhoto)
		r.Delete("/photos/{id}", s.handleDeletePhoto)

		r.Get("/themes", s.handleListThemes)
		r.Get("/overlays", s.handleListOverlays)
		r.Get("/filters", s.handleListFilters)

		r.Post("/compose", s.handleCompose)
		r.Post("/print", s.handlePrint)
		r.Post("/estimate", s.handleEstimate)

		r.Get("/events", s.handleListEvents)
		r.Post("/events", s.handleSaveEvent)
		r.Get("/events/{id}", s.handleGetEvent)
		r.Put("/events/{id}", s.handleSaveEvent)
		r.Delete("/events/{id}", s.handleDeleteEvent)
	})
	return r
}

// ── Photo handlers ──

func (s *srv) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil || len(data) == 0 {
		badRequest(w, r, "empty or unreadable upload body")
		return
	}
	if len(data) > maxUploadBytes {
		badRequest(w, r, "upload too large")
		return
	}

	mime := r.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	name := r.URL.Query().Get("name")

	p := s.photos.add(name, mime, data)
	logrus.WithFields(logrus.Fields{"photo": p.ID, "bytes": p.Size}).Debug("photo uploaded")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, p)
}

func (s *srv) handleListPhotos(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.photos.list())
}

func (s *srv) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	p, ok := s.photos.get(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, r)
		return
	}
	w.Header().Set("Content-Type", p.Mime)
	w.Write(p.data)
}

func (s *srv) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	s.photos.remove(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ── Reference data handlers ──

func (s *srv) handleListThemes(w http.ResponseWriter, r *http.Request) {
	themes := make([]style.Theme, 0, len(s.themes))
	for _, t := range s.themes {
		themes = append(themes, t)
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].ID < themes[j].ID })
	render.JSON(w, r, themes)
}

func (s *srv) handleListOverlays(w http.ResponseWriter, r *http.Request) {
	overlays := make([]style.Overlay, 0, len(s.overlays))
	for _, o := range s.overlays {
		o.Image = nil // listings never carry pixel data
		overlays = append(overlays, o)
	}
	sort.Slice(overlays, func(i, j int) bool { return overlays[i].ID < overlays[j].ID })
	render.JSON(w, r, overlays)
}

func (s *srv) handleListFilters(w http.ResponseWriter, r *http.Request) {
	type filterInfo struct {
		ID  filter.ID `json:"id"`
		CSS string    `json:"css"`
	}
	out := make([]filterInfo, 0, len(filter.All))
	for _, id := range filter.All {
		out = append(out, filterInfo{ID: id, CSS: filter.CSS(id)})
	}
	render.JSON(w, r, out)
}

// ── Composition handlers ──

// composeRequest is the wire form of a composition: photos arrive as IDs of
// previous uploads, the theme as a registry ID.
type composeRequest struct {
	Mode            compose.Mode             `json:"mode"`
	PhotoIDs        []string                 `json:"photoIds"`
	PhotoCount      int                      `json:"photoCount"`
	Filter          filter.ID                `json:"filterId"`
	ThemeID         string                   `json:"themeId"`
	OverlayIDs      []string                 `json:"overlayIds"`
	CustomTexts     map[string]string        `json:"customTexts"`
	IncludeDatetime bool                     `json:"includeDatetime"`
	Layout          layout.PrintLayoutConfig `json:"layout"`
	DuplicateStrip  bool                     `json:"duplicateStrip"`
	Format          export.Format            `json:"format"`
	Quality         float64                  `json:"quality"`
}

// toRequest resolves photo IDs and the theme. A missing photo ID degrades to
// an empty slot, matching the composer's per-item tolerance.
func (s *srv) toRequest(cr *composeRequest) *compose.Request {
	photos := make([]compose.CapturedPhoto, len(cr.PhotoIDs))
	for i, id := range cr.PhotoIDs {
		p, ok := s.photos.get(id)
		if !ok {
			logrus.WithField("photo", id).Warn("compose references unknown photo, slot left empty")
			photos[i] = compose.CapturedPhoto{ID: id}
			continue
		}
		photos[i] = compose.CapturedPhoto{ID: p.ID, Data: p.data, Timestamp: p.Uploaded}
	}

	return &compose.Request{
		Mode:            cr.Mode,
		Photos:          photos,
		PhotoCount:      cr.PhotoCount,
		Filter:          cr.Filter,
		Theme:           s.themes.GetOrDefault(cr.ThemeID),
		OverlayIDs:      cr.OverlayIDs,
		CustomTexts:     cr.CustomTexts,
		IncludeDatetime: cr.IncludeDatetime,
		Layout:          cr.Layout,
		DuplicateStrip:  cr.DuplicateStrip,
	}
}

func (s *srv) handleCompose(w http.ResponseWriter, r *http.Request) {
	var cr composeRequest
	if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
		badRequest(w, r, "malformed compose request: "+err.Error())
		return
	}
	req := s.toRequest(&cr)

	img, err := export.Render(r.Context(), s.composer, req)
	if err != nil {
		composeError(w, r, err)
		return
	}

	format := cr.Format
	if format == "" {
		format = export.PNG
	}
	quality := cr.Quality
	if quality <= 0 {
		quality = export.DefaultJPEGQuality
	}

	data, err := export.Encode(img, format, quality)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if format == export.JPEG {
		w.Header().Set("Content-Type", "image/jpeg")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	w.Write(data)
}

// handlePrint always renders the 4R print canvas and answers with a JPEG
// data URL at print quality, the contract of the print-submission layer.
func (s *srv) handlePrint(w http.ResponseWriter, r *http.Request) {
	var cr composeRequest
	if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
		badRequest(w, r, "malformed print request: "+err.Error())
		return
	}
	cr.Mode = compose.ModePrint
	req := s.toRequest(&cr)

	img, err := s.composer.ComposeForPrint(r.Context(), req)
	if err != nil {
		composeError(w, r, err)
		return
	}

	dataURL, err := export.DataURL(img, export.JPEG, export.PrintJPEGQuality)
	if err != nil {
		serverError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"dataUrl": dataURL})
}

func (s *srv) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var cr composeRequest
	if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
		badRequest(w, r, "malformed estimate request: "+err.Error())
		return
	}
	req := s.toRequest(&cr)

	format := cr.Format
	if format == "" {
		format = export.JPEG
	}
	quality := cr.Quality
	if quality <= 0 {
		quality = export.DefaultJPEGQuality
	}

	size, err := export.EstimateSize(r.Context(), s.composer, req, format, quality)
	if err != nil {
		composeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]int{"bytes": size})
}

// ── Event handlers ──

func (s *srv) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	render.JSON(w, r, events)
}

func (s *srv) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.events.Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, eventstore.ErrNotFound) {
		notFound(w, r)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	render.JSON(w, r, cfg)
}

func (s *srv) handleSaveEvent(w http.ResponseWriter, r *http.Request) {
	var cfg eventstore.EventConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		badRequest(w, r, "malformed event config: "+err.Error())
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		cfg.ID = id
	}

	id, err := s.events.Save(r.Context(), &cfg)
	if err != nil {
		serverError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"id": id})
}

func (s *srv) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.events.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Error responses ──

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]string{"error": msg})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, map[string]string{"error": "not found"})
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logrus.WithError(err).Error("request failed")
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}

func composeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, compose.ErrSurfaceUnavailable) {
		serverError(w, r, err)
		return
	}
	// Client went away mid-composition.
	logrus.WithError(err).Debug("composition aborted")
	w.WriteHeader(http.StatusRequestTimeout)
}
