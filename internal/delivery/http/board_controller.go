package http

import (
	"log/slog"
	"net/http"
	"sort"

	"scheduleboard/internal/domain"
)

// BoardController serves the board's read API straight from the schedule
// store. It is the thin backend surface the loader ports consume; all
// schedule state flows in through the store, never through this API.
type BoardController struct {
	Logger *slog.Logger
	Store  domain.ScheduleStore
}

func NewBoardController(logger *slog.Logger, store domain.ScheduleStore) *BoardController {
	return &BoardController{
		Logger: logger,
		Store:  store,
	}
}

// GetSections godoc
// @Summary List an event's sections
// @Description Returns all sections of the event as a JSON array, sorted by display order.
// @Tags sections
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {array} domain.Section
// @Failure 500 {object} map[string]string
// @Router /api/sections/{eventID} [get]
func (c *BoardController) GetSections(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	sections, err := c.Store.ListSections(r.Context(), eventID)
	if err != nil {
		c.Logger.Error("list sections failed", "event_id", eventID, "error", err)
		WriteError(w, http.StatusInternalServerError, "could not load sections")
		return
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Order != sections[j].Order {
			return sections[i].Order < sections[j].Order
		}
		return sections[i].ID < sections[j].ID
	})
	WriteJSON(w, http.StatusOK, sections)
}

// GetSessions godoc
// @Summary List an event's sessions
// @Description Returns every session of the event as a JSON array, sorted by start time.
// @Tags sessions
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {array} domain.Session
// @Failure 500 {object} map[string]string
// @Router /api/sessions/{eventID} [get]
func (c *BoardController) GetSessions(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	sessions, err := c.Store.ListSessions(r.Context(), eventID)
	if err != nil {
		c.Logger.Error("list sessions failed", "event_id", eventID, "error", err)
		WriteError(w, http.StatusInternalServerError, "could not load sessions")
		return
	}
	WriteJSON(w, http.StatusOK, sortSessions(sessions))
}

// GetSessionsBySection godoc
// @Summary List one section's sessions
// @Description Returns the event's sessions belonging to the given section, sorted by start time.
// @Tags sessions
// @Produce json
// @Param eventID path string true "Event ID"
// @Param sectionID path string true "Section ID"
// @Success 200 {array} domain.Session
// @Failure 500 {object} map[string]string
// @Router /api/sessions/{eventID}/{sectionID} [get]
func (c *BoardController) GetSessionsBySection(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	sectionID := r.PathValue("sectionID")
	sessions, err := c.Store.ListSessionsBySection(r.Context(), eventID, sectionID)
	if err != nil {
		c.Logger.Error("list section sessions failed",
			"event_id", eventID, "section_id", sectionID, "error", err)
		WriteError(w, http.StatusInternalServerError, "could not load sessions")
		return
	}
	WriteJSON(w, http.StatusOK, sortSessions(sessions))
}

func sortSessions(sessions []*domain.Session) []*domain.Session {
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].StartTime.Equal(sessions[j].StartTime) {
			return sessions[i].StartTime.Before(sessions[j].StartTime)
		}
		return sessions[i].ID < sessions[j].ID
	})
	return sessions
}
