package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sdui/pkg/schema"
)

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestScreensServeEmbeddedDocuments(t *testing.T) {
	h := newServer(defaultScreens(), nil).routes()

	for _, name := range []string{"home", "home.json", "books"} {
		rec := get(t, h, "/screens/"+name)
		require.Equal(t, http.StatusOK, rec.Code, name)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		root, err := schema.Decode(rec.Body.Bytes())
		require.NoError(t, err, name)
		assert.Equal(t, schema.TypeContainer, root.ComponentType())
	}
}

func TestScreensMissingAndInvalid(t *testing.T) {
	screens := fstest.MapFS{
		"broken.json": &fstest.MapFile{Data: []byte(`{"_component_": 3}`)},
	}
	h := newServer(screens, nil).routes()

	rec := get(t, h, "/screens/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/screens/broken")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid screen document", body.Error)

	rec = get(t, h, "/screens/.hidden")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookDatabase(t *testing.T) {
	h := newServer(fstest.MapFS{}, nil).routes()

	var chars []character
	rec := get(t, h, "/book-database/characters?page=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chars))
	require.Len(t, chars, 3)
	assert.Equal(t, character{ID: 2, Name: "Name2", Book: "Book2", Collection: "Collection2"}, chars[1])

	var gs []genre
	rec = get(t, h, "/book-database/categories")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gs))
	assert.Equal(t, []genre{{1, "Genre1"}, {2, "Genre2"}, {3, "Genre3"}}, gs)

	var cb []categoryBook
	rec = get(t, h, "/book-database/category/Genre2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cb))
	require.Len(t, cb, 3)
	assert.Equal(t, "Title3", cb[2].Title)
	assert.Len(t, cb[0].Characters, 3)

	var bs []book
	rec = get(t, h, "/book-database/books?page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bs))
	require.Len(t, bs, 3)
	assert.Equal(t, book{ID: 3, Title: "Title3", Author: "Author3", Collection: "Collection3", BookNumber: 3, Genre: 3, Rating: 3.3}, bs[2])
}

func TestListsRequirePage(t *testing.T) {
	h := newServer(fstest.MapFS{}, nil).routes()

	for _, target := range []string{"/book-database/characters", "/book-database/books", "/book-database/books?offset=1"} {
		rec := get(t, h, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), target)
		assert.Equal(t, "missing query parameter: page", body.Error, target)
	}

	rec := get(t, h, "/book-database/characters?page=")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotAllowedAndMetrics(t *testing.T) {
	h := newServer(fstest.MapFS{}, nil).routes()

	req := httptest.NewRequest(http.MethodPost, "/book-database/books", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sdui_http_requests_total")
}
