// Package bills serves the consumed store contract for local development,
// standing in for the remote Billed API.
package bills

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/bill"
)

type Handler struct {
	mu    sync.RWMutex
	bills map[string]*bill.Bill
	files map[string][]byte
}

func NewHandler(seed []*bill.Bill) *Handler {
	h := &Handler{
		bills: make(map[string]*bill.Bill, len(seed)),
		files: make(map[string][]byte),
	}

	for _, b := range seed {
		h.bills[b.ID] = b
	}

	return h
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/bills", h.list)
	r.Post("/bills", h.create)
	r.Patch("/bills/{id}", h.update)
	r.Get("/files/{name}", h.file)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	out := make([]*bill.Bill, 0, len(h.bills))
	for _, b := range h.bills {
		out = append(out, b)
	}
	h.mu.RUnlock()

	bill.SortByDateDesc(out)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(out); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	if email == "" {
		http.Error(w, "email field is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()
	fileURL := fmt.Sprintf("http://%s/files/%s", r.Host, header.Filename)

	h.mu.Lock()
	h.files[header.Filename] = content
	h.bills[id] = &bill.Bill{
		ID:       id,
		Email:    email,
		FileURL:  fileURL,
		FileName: header.Filename,
		Status:   bill.StatusPending,
	}
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := bill.CreateResult{
		ID:       id,
		Key:      id,
		FileURL:  fileURL,
		FileName: header.Filename,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req bill.Bill
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	existing, ok := h.bills[id]
	if !ok {
		h.mu.Unlock()
		http.Error(w, "bill not found", http.StatusNotFound)

		return
	}

	req.ID = id
	if req.Email == "" {
		req.Email = existing.Email
	}

	if req.FileURL == "" {
		req.FileURL = existing.FileURL
	}

	h.bills[id] = &req
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(&req); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) file(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	h.mu.RLock()
	content, ok := h.files[name]
	h.mu.RUnlock()

	if !ok {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	w.Write(content)
}

// Seed returns the development fixture set.
func Seed() []*bill.Bill {
	return []*bill.Bill{
		{
			ID:       "47qAXb6fIm2zOKkLzMro",
			Email:    "a@a",
			Type:     bill.TypeHotel,
			Name:     "encore",
			Amount:   400,
			Date:     "2004-04-04",
			VAT:      "80",
			Pct:      20,
			FileName: "preview-facture-free-201801-pdf-1.jpg",
			FileURL:  "http://localhost:5678/files/preview-facture-free-201801-pdf-1.jpg",
			Status:   bill.StatusPending,
		},
		{
			ID:       "BeKy5Mo4jkmdfPGYpTxZ",
			Email:    "a@a",
			Type:     bill.TypeTransports,
			Name:     "test1",
			Amount:   100,
			Date:     "2001-01-01",
			VAT:      "",
			Pct:      20,
			FileName: "billet-train-paris-lyon.png",
			FileURL:  "http://localhost:5678/files/billet-train-paris-lyon.png",
			Status:   bill.StatusRefused,
		},
		{
			ID:       "UIUZtnPQvnbFnB0ozvJh",
			Email:    "a@a",
			Type:     bill.TypeServices,
			Name:     "test3",
			Amount:   300,
			Date:     "2003-03-03",
			VAT:      "60",
			Pct:      20,
			FileName: "facture-client-php-exportee-dans-document-pdf.jpg",
			FileURL:  "http://localhost:5678/files/facture-client-php-exportee-dans-document-pdf.jpg",
			Status:   bill.StatusAccepted,
		},
		{
			ID:       "qcCK3SzECmaZAGRrHjaC",
			Email:    "a@a",
			Type:     bill.TypeRestaurants,
			Name:     "test2",
			Amount:   200,
			Date:     "2002-02-02",
			VAT:      "40",
			Pct:      20,
			FileName: "note-restaurant.jpeg",
			FileURL:  "http://localhost:5678/files/note-restaurant.jpeg",
			Status:   bill.StatusPending,
		},
	}
}
