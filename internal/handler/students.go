package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/schoolhub/library-service/internal/model"
)

func (h *Handler) GetStudents(c echo.Context) error {
	students, err := h.svc.Membership.ListStudents(c.Request().Context(), model.ListStudentsFilter{
		Grade:   c.QueryParam("grade"),
		Section: c.QueryParam("section"),
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, students)
}

func (h *Handler) GetStudent(c echo.Context) error {
	studentID, err := studentIDParam(c)
	if err != nil {
		return err
	}
	student, err := h.svc.Membership.GetStudent(c.Request().Context(), studentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, student)
}

func (h *Handler) GetRecommendations(c echo.Context) error {
	studentID, err := studentIDParam(c)
	if err != nil {
		return err
	}
	k := 3
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if k, err = strconv.Atoi(limitParam); err != nil || k < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit is invalid")
		}
	}
	type resp struct {
		StudentID string `json:"studentId"`
		BookIDs   []int  `json:"bookIds"`
	}
	ids := h.svc.Recommend.Recommend(c.Request().Context(), studentID, k)
	return c.JSON(http.StatusOK, resp{StudentID: studentID, BookIDs: ids})
}

func studentIDParam(c echo.Context) (string, error) {
	studentID := c.Param("studentId")
	if _, err := uuid.Parse(studentID); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "studentId is invalid")
	}
	return studentID, nil
}
