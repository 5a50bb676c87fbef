package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEventsJoinsArtist(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/eventi", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	events := decodeList(t, w)
	require.Len(t, events, 1)
	assert.Equal(t, "Concerto Rock", events[0]["titolo"])

	artista, ok := events[0]["artista"].(map[string]interface{})
	require.True(t, ok, "listed event must embed its artist")
	assert.Equal(t, "Artista Rock", artista["nome"])
}

func TestGetEventNotFound(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/eventi/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateEvent(t *testing.T) {
	r, db, tokens := newTestServer(t)
	admin := adminToken(t, tokens, db)
	artist := seededArtist(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/eventi", admin, map[string]interface{}{
		"titolo":    "Concerto Jazz",
		"data":      time.Now().AddDate(0, 2, 0).Format(time.RFC3339),
		"luogo":     "Teatro Comunale",
		"artistaId": artist.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	id := body["eventoId"].(string)
	assert.Equal(t, "/api/eventi/"+id, w.Header().Get("Location"))

	w = doJSON(t, r, http.MethodGet, "/api/eventi/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Concerto Jazz", decodeBody(t, w)["titolo"])
}

func TestCreateEventMissingArtist(t *testing.T) {
	r, db, tokens := newTestServer(t)
	admin := adminToken(t, tokens, db)

	w := doJSON(t, r, http.MethodPost, "/api/eventi", admin, map[string]interface{}{
		"titolo":    "Concerto Fantasma",
		"data":      time.Now().AddDate(0, 2, 0).Format(time.RFC3339),
		"luogo":     "Da Nessuna Parte",
		"artistaId": uuid.New(),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "artistaId")
}

func TestEventWritesAreAdminOnly(t *testing.T) {
	r, db, tokens := newTestServer(t)
	createUser(t, db, "mario@example.com", "Password1!")
	userTok := issueFor(t, tokens, db, "mario@example.com")
	artist := seededArtist(t, db)

	payload := map[string]interface{}{
		"titolo":    "Concerto Abusivo",
		"data":      time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
		"luogo":     "Piazza",
		"artistaId": artist.ID,
	}

	w := doJSON(t, r, http.MethodPost, "/api/eventi", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/eventi", userTok, payload)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateEvent(t *testing.T) {
	r, db, tokens := newTestServer(t)
	admin := adminToken(t, tokens, db)
	event := seededEvent(t, db)

	w := doJSON(t, r, http.MethodPut, "/api/eventi/"+event.ID.String(), admin, map[string]interface{}{
		"eventoId":  event.ID,
		"titolo":    "Concerto Rock Spostato",
		"data":      event.Date.Format(time.RFC3339),
		"luogo":     "Arena",
		"artistaId": event.ArtistID,
		"revision":  event.Revision,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateEventVanishedRecord(t *testing.T) {
	r, db, tokens := newTestServer(t)
	admin := adminToken(t, tokens, db)
	artist := seededArtist(t, db)
	event := seededEvent(t, db)

	w := doJSON(t, r, http.MethodDelete, "/api/eventi/"+event.ID.String(), admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// The losing writer re-checks and finds the record gone: 404, not a
	// silent no-op.
	w = doJSON(t, r, http.MethodPut, "/api/eventi/"+event.ID.String(), admin, map[string]interface{}{
		"eventoId":  event.ID,
		"titolo":    "Concerto Cancellato",
		"data":      event.Date.Format(time.RFC3339),
		"luogo":     event.Location,
		"artistaId": artist.ID,
		"revision":  event.Revision,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteArtistLeavesEventsListable(t *testing.T) {
	r, db, tokens := newTestServer(t)
	admin := adminToken(t, tokens, db)
	artist := seededArtist(t, db)

	w := doJSON(t, r, http.MethodDelete, "/api/artisti/"+artist.ID.String(), admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// The event survives with a dangling artist reference and the listing
	// still renders.
	w = doJSON(t, r, http.MethodGet, "/api/eventi", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	events := decodeList(t, w)
	require.Len(t, events, 1)
	assert.Nil(t, events[0]["artista"])
}
