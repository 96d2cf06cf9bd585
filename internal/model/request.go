package model

import (
	"time"
)

type AddBookRequest struct {
	Name   string `json:"name" validate:"required"`
	Author string `json:"author" validate:"required"`
	Genre  Genre  `json:"genre" validate:"required,oneof=fiction non-fiction mystery science fantasy biography history poetry"`
	Copies int    `json:"copies" validate:"required,min=1"`
}

type ListBooksFilter struct {
	Genre         Genre
	AvailableOnly bool
	Page, Size    int
}

type ListStudentsFilter struct {
	Grade   string
	Section string
}

type IssueLoanRequest struct {
	BookID    int    `json:"bookId" validate:"required"`
	StudentID string `json:"studentId" validate:"required,uuid"`
}

type SubmitReviewRequest struct {
	BookID    int    `json:"-"`
	StudentID string `json:"studentId" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Review    string `json:"review"`
}

type AddEventRequest struct {
	Name        string    `json:"name" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Audience    string    `json:"audience" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

type OutstandingFines struct {
	StudentID string  `json:"studentId"`
	Total     float64 `json:"total"`
}
