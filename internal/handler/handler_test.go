package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/errs"
	"github.com/schoolhub/library-service/internal/handler"
	service_mocks "github.com/schoolhub/library-service/internal/handler/mocks"
	"github.com/schoolhub/library-service/internal/model"
	"github.com/schoolhub/library-service/pkg/validate"
)

const studentID = "6b8e7c1e-58a8-4c3f-9c86-8f7ad7b3a001"

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	return e
}

func TestHandler_AddBook(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCatalogService, req model.AddBookRequest)

	var tests = []struct {
		name         string
		body         string
		input        model.AddBookRequest
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"name":"Dune","author":"Herbert","genre":"fiction","copies":2}`,
			input: model.AddBookRequest{
				Name:   "Dune",
				Author: "Herbert",
				Genre:  model.GenreFiction,
				Copies: 2,
			},
			mockBehavior: func(r *service_mocks.MockCatalogService, req model.AddBookRequest) {
				r.EXPECT().
					AddBook(context.Background(), req).
					Return(model.Book{
						ID:          1,
						Name:        "Dune",
						Author:      "Herbert",
						Genre:       model.GenreFiction,
						TotalCount:  2,
						OnLoanCount: 0,
						Available:   2,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"name":"Dune","author":"Herbert","genre":"fiction","totalCount":2,"onLoanCount":0,"available":2}`,
			},
		},
		{
			name:         "err. zero copies",
			body:         `{"name":"Dune","author":"Herbert","genre":"fiction","copies":0}`,
			mockBehavior: func(r *service_mocks.MockCatalogService, req model.AddBookRequest) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name:         "err. unknown genre",
			body:         `{"name":"Dune","author":"Herbert","genre":"space opera","copies":2}`,
			mockBehavior: func(r *service_mocks.MockCatalogService, req model.AddBookRequest) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. internal",
			body: `{"name":"Dune","author":"Herbert","genre":"fiction","copies":2}`,
			input: model.AddBookRequest{
				Name:   "Dune",
				Author: "Herbert",
				Genre:  model.GenreFiction,
				Copies: 2,
			},
			mockBehavior: func(r *service_mocks.MockCatalogService, req model.AddBookRequest) {
				r.EXPECT().
					AddBook(context.Background(), req).
					Return(model.Book{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCatalogService(c)
			tt.mockBehavior(svc, tt.input)
			log := zap.NewExample().Named("test")
			h := handler.New(handler.Services{Catalog: svc}, log)

			e := newEcho()
			e.POST("/api/v1/books", h.AddBook)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_IssueLoan(t *testing.T) {
	t.Parallel()
	borrow := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	due := borrow.AddDate(0, 0, 30)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLoanService, req model.IssueLoanRequest)

	var tests = []struct {
		name         string
		body         string
		input        model.IssueLoanRequest
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:  "ok",
			body:  fmt.Sprintf(`{"bookId":1,"studentId":%q}`, studentID),
			input: model.IssueLoanRequest{BookID: 1, StudentID: studentID},
			mockBehavior: func(r *service_mocks.MockLoanService, req model.IssueLoanRequest) {
				r.EXPECT().
					Issue(context.Background(), req).
					Return(model.Loan{
						ID:         "a9f2d1de-06e2-4f1a-8f3a-52a3eae4b0d1",
						BookID:     1,
						StudentID:  studentID,
						BorrowDate: borrow,
						DueDate:    due,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: fmt.Sprintf(`{"loanId":"a9f2d1de-06e2-4f1a-8f3a-52a3eae4b0d1","bookId":1,"studentId":%q,"borrowDate":"2024-03-01T10:00:00Z","dueDate":"2024-03-31T10:00:00Z","returned":false,"fine":0}`, studentID),
			},
		},
		{
			name:  "err. no copy available",
			body:  fmt.Sprintf(`{"bookId":1,"studentId":%q}`, studentID),
			input: model.IssueLoanRequest{BookID: 1, StudentID: studentID},
			mockBehavior: func(r *service_mocks.MockLoanService, req model.IssueLoanRequest) {
				r.EXPECT().
					Issue(context.Background(), req).
					Return(model.Loan{}, errs.ErrNoCopyAvailable)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"no copy available"}`,
			},
		},
		{
			name:  "err. unknown student",
			body:  fmt.Sprintf(`{"bookId":1,"studentId":%q}`, studentID),
			input: model.IssueLoanRequest{BookID: 1, StudentID: studentID},
			mockBehavior: func(r *service_mocks.MockLoanService, req model.IssueLoanRequest) {
				r.EXPECT().
					Issue(context.Background(), req).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name:         "err. studentId not a uuid",
			body:         `{"bookId":1,"studentId":"max"}`,
			mockBehavior: func(r *service_mocks.MockLoanService, req model.IssueLoanRequest) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLoanService(c)
			tt.mockBehavior(svc, tt.input)
			log := zap.NewExample().Named("test")
			h := handler.New(handler.Services{Loan: svc}, log)

			e := newEcho()
			e.POST("/api/v1/loans", h.IssueLoan)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/loans", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ReturnLoan(t *testing.T) {
	t.Parallel()
	const loanID = "a9f2d1de-06e2-4f1a-8f3a-52a3eae4b0d1"
	borrow := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	due := borrow.AddDate(0, 0, 30)
	returned := borrow.AddDate(0, 0, 35)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLoanService)

	var tests = []struct {
		name         string
		loanID       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:         "err. loanId not a uuid",
			loanID:       "abc",
			mockBehavior: func(r *service_mocks.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"loanId is invalid"}`,
			},
		},
		{
			name: "ok. five days overdue",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Return(context.Background(), loanID).
					Return(model.Loan{
						ID:         loanID,
						BookID:     1,
						StudentID:  studentID,
						BorrowDate: borrow,
						DueDate:    due,
						ReturnDate: &returned,
						Returned:   true,
						Fine:       5,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"loanId":%q,"bookId":1,"studentId":%q,"borrowDate":"2024-03-01T10:00:00Z","dueDate":"2024-03-31T10:00:00Z","returnDate":"2024-04-05T10:00:00Z","returned":true,"fine":5}`, loanID, studentID),
			},
		},
		{
			name: "err. already returned",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Return(context.Background(), loanID).
					Return(model.Loan{}, errs.ErrAlreadyReturned)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"loan already returned"}`,
			},
		},
		{
			name: "err. unknown loan",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Return(context.Background(), loanID).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name: "err. transient store conflict",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					Return(context.Background(), loanID).
					Return(model.Loan{}, errs.ErrTransientStore)
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"transient store failure"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLoanService(c)
			tt.mockBehavior(svc)
			log := zap.NewExample().Named("test")
			h := handler.New(handler.Services{Loan: svc}, log)

			e := newEcho()
			e.POST("/api/v1/loans/:loanId/return", h.ReturnLoan)

			id := tt.loanID
			if id == "" {
				id = loanID
			}
			r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/loans/%s/return", id), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetRecommendations(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRecommendService)

	var tests = []struct {
		name         string
		studentID    string
		limit        string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:         "err. studentId not a uuid",
			studentID:    "not-a-uuid",
			mockBehavior: func(r *service_mocks.MockRecommendService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"studentId is invalid"}`,
			},
		},
		{
			name:  "ok",
			limit: "2",
			mockBehavior: func(r *service_mocks.MockRecommendService) {
				r.EXPECT().
					Recommend(context.Background(), studentID, 2).
					Return([]int{4, 1})
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"studentId":%q,"bookIds":[4,1]}`, studentID),
			},
		},
		{
			name: "ok. default limit, no signal",
			mockBehavior: func(r *service_mocks.MockRecommendService) {
				r.EXPECT().
					Recommend(context.Background(), studentID, 3).
					Return([]int{})
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"studentId":%q,"bookIds":[]}`, studentID),
			},
		},
		{
			name:         "err. bad limit",
			limit:        "many",
			mockBehavior: func(r *service_mocks.MockRecommendService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"limit is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockRecommendService(c)
			tt.mockBehavior(svc)
			log := zap.NewExample().Named("test")
			h := handler.New(handler.Services{Recommend: svc}, log)

			e := newEcho()
			e.GET("/api/v1/students/:studentId/recommendations", h.GetRecommendations)

			id := tt.studentID
			if id == "" {
				id = studentID
			}
			url := fmt.Sprintf("/api/v1/students/%s/recommendations", id)
			if tt.limit != "" {
				url += "?limit=" + tt.limit
			}
			r := httptest.NewRequest(http.MethodGet, url, http.NoBody)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
