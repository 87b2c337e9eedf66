package handler

import (
	"html/template"
	"net/http"

	"radioboard/domain"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetPrograms(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", struct {
		Programs []domain.Program
	}{
		Programs: h.Programs.All(),
	})
}

// GetProgram renders the aggregated published history of one program.
func (h *Handler) GetProgram(c echo.Context) error {
	program, _ := h.Programs.Lookup(c.Param("program"))
	dates, err := h.Board.ProgramPage(c.Request().Context(), program.ID)
	if err != nil {
		return httpError(err)
	}

	var description template.HTML
	if program.Description != "" {
		description = safeMd(program.Description)
	}
	return c.Render(http.StatusOK, "program.html", struct {
		Program     domain.Program
		Description template.HTML
		Dates       []domain.DateGroup
	}{
		Program:     program,
		Description: description,
		Dates:       dates,
	})
}

type programJSON struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Color string             `json:"color"`
	Known bool               `json:"known"`
	Dates []domain.DateGroup `json:"dates"`
}

// GetProgramJSON serves the same aggregation as GetProgram.
func (h *Handler) GetProgramJSON(c echo.Context) error {
	program, known := h.Programs.Lookup(c.Param("program"))
	dates, err := h.Board.ProgramPage(c.Request().Context(), program.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, programJSON{
		ID:    program.ID,
		Name:  program.Name,
		Color: program.Color,
		Known: known,
		Dates: dates,
	})
}

func (h *Handler) Health(c echo.Context) error {
	if err := h.Store.Ping(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable").SetInternal(err)
	}
	return c.String(http.StatusOK, "ok")
}
