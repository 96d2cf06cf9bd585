package model

import (
	"time"
)

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type Genre string

const (
	GenreFiction    Genre = "fiction"
	GenreNonFiction Genre = "non-fiction"
	GenreMystery    Genre = "mystery"
	GenreScience    Genre = "science"
	GenreFantasy    Genre = "fantasy"
	GenreBiography  Genre = "biography"
	GenreHistory    Genre = "history"
	GenrePoetry     Genre = "poetry"
)

type Book struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Author      string `json:"author" db:"author"`
	Genre       Genre  `json:"genre" db:"genre"`
	TotalCount  int    `json:"totalCount" db:"total_count"`
	OnLoanCount int    `json:"onLoanCount" db:"on_loan_count"`
	Available   int    `json:"available" db:"available"`
}

type Student struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Grade     string    `json:"grade" db:"grade"`
	Section   string    `json:"section" db:"section"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Loan struct {
	ID         string     `json:"loanId" db:"id"`
	BookID     int        `json:"bookId" db:"book_id"`
	StudentID  string     `json:"studentId" db:"student_id"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Returned   bool       `json:"returned" db:"returned"`
	Fine       float64    `json:"fine" db:"fine"`
}

type Review struct {
	ID        string    `json:"reviewId" db:"id"`
	BookID    int       `json:"bookId" db:"book_id"`
	StudentID string    `json:"studentId" db:"student_id"`
	Rating    int       `json:"rating" db:"rating"`
	Review    string    `json:"review,omitempty" db:"review"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type BookCirculation struct {
	BookID       int       `json:"bookId" db:"book_id"`
	Issued       int       `json:"issued" db:"issued"`
	Returned     int       `json:"returned" db:"returned"`
	LastActivity time.Time `json:"lastActivity" db:"last_activity"`
}

type CirculationStats struct {
	Data []BookCirculation `json:"data"`
}

type Event struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Date        time.Time `json:"date" db:"date"`
	Audience    string    `json:"audience" db:"audience"`
	Description string    `json:"description" db:"description"`
}
