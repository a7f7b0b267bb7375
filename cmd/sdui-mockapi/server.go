package main

import (
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-sdui/pkg/metrics"
	"github.com/goliatone/go-sdui/pkg/schema"
)

//go:embed screens/*.json
var embeddedScreens embed.FS

// defaultScreens returns the screens bundled with the binary.
func defaultScreens() fs.FS {
	sub, err := fs.Sub(embeddedScreens, "screens")
	if err != nil {
		panic(err)
	}
	return sub
}

type server struct {
	screens fs.FS
	logger  logrus.FieldLogger
}

type errorResponse struct {
	Error string `json:"error"`
}

func newServer(screens fs.FS, logger logrus.FieldLogger) *server {
	if logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		logger = l
	}
	return &server{screens: screens, logger: logger}
}

// routes builds the router; every route is instrumented.
func (s *server) routes() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/screens/{name}", s.handleScreen).Methods("GET")
	router.HandleFunc("/book-database/characters", s.handleCharacters).Methods("GET")
	router.HandleFunc("/book-database/categories", s.handleCategories).Methods("GET")
	router.HandleFunc("/book-database/category/{category}", s.handleCategory).Methods("GET")
	router.HandleFunc("/book-database/books", s.handleBooks).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	return metrics.InstrumentHandler(router)
}

func (s *server) handleScreen(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusBadRequest, "invalid screen name")
		return
	}
	if path.Ext(name) == "" {
		name += ".json"
	}

	data, err := fs.ReadFile(s.screens, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "screen not found")
			return
		}
		s.logger.WithError(err).WithField("screen", name).Error("read screen")
		writeError(w, http.StatusInternalServerError, "read screen")
		return
	}

	// Refuse to serve documents the client would fail to decode.
	if _, err := schema.Decode(data); err != nil {
		s.logger.WithError(err).WithField("screen", name).Warn("invalid screen document")
		writeError(w, http.StatusInternalServerError, "invalid screen document")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	if !requirePage(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, characters)
}

func (s *server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, genres)
}

func (s *server) handleCategory(w http.ResponseWriter, r *http.Request) {
	s.logger.WithField("category", mux.Vars(r)["category"]).Debug("category books")
	writeJSON(w, http.StatusOK, categoryBooks())
}

func (s *server) handleBooks(w http.ResponseWriter, r *http.Request) {
	if !requirePage(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// requirePage rejects list requests without a page parameter. The fixtures
// hold a single page, so its value is not interpreted.
func requirePage(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Has("page") {
		return true
	}
	writeError(w, http.StatusBadRequest, "missing query parameter: page")
	return false
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
