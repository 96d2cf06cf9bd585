package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/library-service/internal/model"
)

func (h *Handler) AddEvent(c echo.Context) error {
	var req model.AddEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	ev, err := h.svc.Calendar.Add(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *Handler) GetEvents(c echo.Context) error {
	events, err := h.svc.Calendar.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *Handler) GetStats(c echo.Context) error {
	statsInfo, err := h.svc.Stats.GetStats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, statsInfo)
}
