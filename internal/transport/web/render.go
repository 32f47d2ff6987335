package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain/geo"
	"github.com/chronomap/georetrieve/internal/domain/search/query"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
	"github.com/chronomap/georetrieve/internal/markers"
	"github.com/chronomap/georetrieve/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var assetFS embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(assetFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// renderer holds the parsed page templates.
type renderer struct {
	tmpl *template.Template
}

func newRenderer() (*renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &renderer{tmpl: tmpl}, nil
}

func (r *renderer) page(w http.ResponseWriter, logger *zap.Logger, data pageData) {
	r.render(w, logger, "page.html", data)
}

func (r *renderer) analytics(w http.ResponseWriter, logger *zap.Logger, data analyticsData) {
	r.render(w, logger, "analytics.html", data)
}

func (r *renderer) render(w http.ResponseWriter, logger *zap.Logger, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("template execute failed", zap.String("template", name), zap.Error(err))
	}
}

// formState carries the raw form values back into the rendered page so
// the inputs keep what the user typed.
type formState struct {
	Mode     string
	Q        string
	Lat      string
	Lon      string
	Georef   string
	Start    string
	End      string
	Distance string
}

func formFromRequest(r *http.Request) formState {
	v := r.URL.Query()
	return formState{
		Mode:     v.Get("mode"),
		Q:        v.Get("q"),
		Lat:      v.Get("lat"),
		Lon:      v.Get("lon"),
		Georef:   v.Get("georef"),
		Start:    v.Get("start"),
		End:      v.Get("end"),
		Distance: v.Get("distance"),
	}
}

// pageData is the model behind page.html.
type pageData struct {
	Form     formState
	Flash    string
	Searched bool
	Count    int
	Cards    []view.Card
	// MapData is a JSON blob (markers + viewport) consumed by the map
	// script; built by json.Marshal, safe to embed.
	MapData template.JS

	DefaultRadius string
}

func newPageData(form formState) pageData {
	if form.Mode == "" {
		form.Mode = "text"
	}
	if form.Distance == "" {
		form.Distance = query.DefaultRadius
	}
	return pageData{
		Form:          form,
		MapData:       template.JS("null"),
		DefaultRadius: query.DefaultRadius,
	}
}

// setResults fills the page with cards and the marker payload for the
// map script.
func (d *pageData) setResults(set *result.Set) error {
	d.Searched = true
	d.Count = set.Len()
	d.Cards = view.Cards(set)

	mgr := markers.NewManager()
	mgr.SetResults(set)

	payload := mapPayload{Markers: mgr.Markers()}
	if bounds, ok := mgr.Viewport(); ok {
		payload.Viewport = &bounds
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal map payload: %w", err)
	}
	d.MapData = template.JS(raw)
	return nil
}

type mapPayload struct {
	Markers  []markers.Marker `json:"markers"`
	Viewport *geo.Bounds      `json:"viewport,omitempty"`
}

// analyticsData is the model behind analytics.html.
type analyticsData struct {
	Flash                string
	TopGeoreferences     string
	TemporalDistribution string
}
