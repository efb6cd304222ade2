// Package store implements the bill.Store contract against the remote
// Billed API.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/bill"
)

type Store struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Store {
	return &Store{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *Store) ListBills(ctx context.Context) ([]*bill.Bill, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/bills", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var bills []*bill.Bill
	if err := json.NewDecoder(resp.Body).Decode(&bills); err != nil {
		return nil, fmt.Errorf("decoding bills: %w", err)
	}

	return bills, nil
}

func (s *Store) CreateBill(ctx context.Context, params bill.CreateParams) (*bill.CreateResult, error) {
	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", params.FileName)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}

	if _, err := io.Copy(part, params.File); err != nil {
		return nil, fmt.Errorf("copying file: %w", err)
	}

	if err := w.WriteField("email", params.Email); err != nil {
		return nil, fmt.Errorf("writing email field: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/bills", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// The content type carries only the writer's boundary; nothing is set
	// beyond what the multipart encoding itself requires.
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created bill.CreateResult
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding create response: %w", err)
	}

	return &created, nil
}

// updatePayload is the save-phase wire format. Email travels with the
// upload phase and the id in the URL, so neither repeats here.
type updatePayload struct {
	Type       bill.Type   `json:"type"`
	Name       string      `json:"name"`
	Amount     int64       `json:"amount"`
	Date       string      `json:"date"`
	VAT        string      `json:"vat"`
	Pct        int         `json:"pct"`
	Commentary string      `json:"commentary"`
	FileName   string      `json:"fileName"`
	FileURL    string      `json:"fileUrl,omitempty"`
	Status     bill.Status `json:"status"`
}

func (s *Store) UpdateBill(ctx context.Context, b *bill.Bill) (*bill.Bill, error) {
	payload, err := json.Marshal(updatePayload{
		Type:       b.Type,
		Name:       b.Name,
		Amount:     b.Amount,
		Date:       b.Date,
		VAT:        b.VAT,
		Pct:        b.Pct,
		Commentary: b.Commentary,
		FileName:   b.FileName,
		FileURL:    b.FileURL,
		Status:     b.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding bill: %w", err)
	}

	url := fmt.Sprintf("%s/bills/%s", s.baseURL, b.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var saved bill.Bill
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, fmt.Errorf("decoding bill: %w", err)
	}

	return &saved, nil
}

func (s *Store) do(req *http.Request) (*http.Response, error) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &bill.StatusError{Code: resp.StatusCode}
	}

	return resp, nil
}
