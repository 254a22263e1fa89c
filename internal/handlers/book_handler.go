package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/dto"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/services"
	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookHandler struct {
	Service *services.BookService
}

func NewBookHandler(svc *services.BookService) *BookHandler {
	return &BookHandler{Service: svc}
}

// POST /api/v1/books
func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req dto.AddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Title == "" || req.Author == "" {
		writeError(w, http.StatusBadRequest, "title and author required")
		return
	}

	book, err := h.Service.AddBook(r.Context(), uid, &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		log.Logger.Error().Err(err).Msg("add book failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

// GET /api/v1/books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	book, err := h.Service.Get(r.Context(), bookID)
	if err != nil {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// GET /api/v1/books?limit=20&offset=0
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	books, err := h.Service.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, books)
}
