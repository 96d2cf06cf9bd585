package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/schoolhub/library-service/internal/model"
)

func (h *Handler) AddBook(c echo.Context) error {
	var req model.AddBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	book, err := h.svc.Catalog.AddBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		err    error
		filter model.ListBooksFilter
	)
	filter.Genre = model.Genre(c.QueryParam("genre"))
	if availableParam := c.QueryParam("available"); availableParam != "" {
		if filter.AvailableOnly, err = strconv.ParseBool(availableParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "available is invalid")
		}
	}
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if filter.Page, err = strconv.Atoi(pageParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if filter.Size, err = strconv.Atoi(sizeParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "size is invalid")
		}
	}

	books, err := h.svc.Catalog.ListBooks(ctx, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}
	book, err := h.svc.Catalog.GetBook(c.Request().Context(), bookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) AvailableCopies(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}
	available, err := h.svc.Catalog.AvailableCopies(c.Request().Context(), bookID)
	if err != nil {
		return httpError(err)
	}
	type resp struct {
		BookID    int `json:"bookId"`
		Available int `json:"available"`
	}
	return c.JSON(http.StatusOK, resp{BookID: bookID, Available: available})
}

func bookIDParam(c echo.Context) (int, error) {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "bookId is invalid")
	}
	return bookID, nil
}
