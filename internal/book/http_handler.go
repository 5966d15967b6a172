package book

import (
	"errors"
	"net/http"
	"strconv"

	"bookhub/internal/httpx"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	service *Service
	pages   PageDefaults
	log     *zap.Logger
}

func NewHTTPHandler(service *Service, pages PageDefaults, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, pages: pages, log: log}
}

// List handles GET /books
// @Summary List books
// @Description Filtered, paginated listing of the catalog
// @Tags books
// @Produce json
// @Param genre query string false "Exact genre"
// @Param rating query number false "Minimum rating"
// @Param search query string false "Substring of title or author"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} ListResult
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := ListQuery{
		Filters: FilterParams{
			Genre:     query.Get("genre"),
			MinRating: query.Get("rating"),
			Search:    query.Get("search"),
		},
		Page: h.pages.ParsePage(query.Get("page"), query.Get("limit")),
	}

	result, err := h.service.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch books")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// Search handles GET /books/search
// @Summary Quick search
// @Description Up to 20 books whose title, author or description contains the query
// @Tags books
// @Produce json
// @Param query query string true "Search term"
// @Success 200 {array} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()["query"]
	if len(values) > 1 {
		h.fail(w, r, &ValidationError{Field: "query", Message: "Search query is required"}, "")
		return
	}

	var term string
	if len(values) == 1 {
		term = values[0]
	}

	books, err := h.service.Search(r.Context(), SearchQuery{Term: term})
	if err != nil {
		h.fail(w, r, err, "Failed to search books")
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// GetByID handles GET /books/{id}
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	// a non-integer id cannot name a book
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.fail(w, r, ErrNotFound, "")
		return
	}

	book, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch book")
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

// ListByGenre handles GET /genres/{genre}/books. The response is a bare array without
// pagination metadata.
// @Summary List books in a genre
// @Tags genres
// @Produce json
// @Param genre path string true "Genre"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /genres/{genre}/books [get]
func (h *HTTPHandler) ListByGenre(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := h.pages.ParsePage(query.Get("page"), query.Get("limit"))

	books, err := h.service.ListByGenre(r.Context(), r.PathValue("genre"), page)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch books")
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Genres handles GET /genres
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} httpx.ErrorResponse
// @Router /genres [get]
func (h *HTTPHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.Genres(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to fetch genres")
		return
	}
	httpx.JSON(w, http.StatusOK, genres)
}

// fail maps err onto a status code. serverMessage is what a client sees for store failures.
func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error, serverMessage string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "Book not found")
	default:
		fields := []zap.Field{
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		}
		var dserr *DataSourceError
		if errors.As(err, &dserr) {
			fields = append(fields, zap.String("op", dserr.Op))
		}
		h.log.Error(serverMessage, fields...)
		httpx.JSONError(w, http.StatusInternalServerError, serverMessage)
	}
}
