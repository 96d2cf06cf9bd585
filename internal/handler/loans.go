package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/schoolhub/library-service/internal/model"
)

func (h *Handler) IssueLoan(c echo.Context) error {
	var req model.IssueLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	ln, err := h.svc.Loan.Issue(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, ln)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	loanID := c.Param("loanId")
	if _, err := uuid.Parse(loanID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "loanId is invalid")
	}
	ln, err := h.svc.Loan.Return(c.Request().Context(), loanID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ln)
}

func (h *Handler) GetOpenLoans(c echo.Context) error {
	studentID, err := studentIDParam(c)
	if err != nil {
		return err
	}
	loans, err := h.svc.Loan.OpenFor(c.Request().Context(), studentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) GetLoanHistory(c echo.Context) error {
	studentID, err := studentIDParam(c)
	if err != nil {
		return err
	}
	loans, err := h.svc.Loan.HistoryFor(c.Request().Context(), studentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) GetFines(c echo.Context) error {
	studentID, err := studentIDParam(c)
	if err != nil {
		return err
	}
	fines, err := h.svc.Loan.OutstandingFines(c.Request().Context(), studentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, fines)
}
