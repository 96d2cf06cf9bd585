package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/library-service/internal/model"
)

func (h *Handler) SubmitReview(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}
	var req model.SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.BookID = bookID
	if err := c.Validate(req); err != nil {
		return err
	}
	rv, err := h.svc.Review.Submit(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rv)
}

func (h *Handler) GetReviews(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}
	reviews, err := h.svc.Review.ForBook(c.Request().Context(), bookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}
