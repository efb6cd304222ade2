package bill

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=bill
type Store interface {
	ListBills(ctx context.Context) ([]*Bill, error)
	CreateBill(ctx context.Context, params CreateParams) (*CreateResult, error)
	UpdateBill(ctx context.Context, b *Bill) (*Bill, error)
}

// CreateParams is the multipart payload of the upload phase: the receipt
// binary plus the owning employee's email.
type CreateParams struct {
	Email    string
	FileName string
	File     io.Reader
}

// CreateResult is what the store hands back once the receipt is uploaded.
// Key mirrors the identifier field some store versions return instead of id.
type CreateResult struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// BillID returns the record identifier assigned during upload, whichever
// field the store used to carry it.
func (r *CreateResult) BillID() string {
	if r.ID != "" {
		return r.ID
	}

	return r.Key
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List fetches the full bill collection, most recent first. Malformed
// records are kept, never dropped; transport rejections propagate to the
// caller as distinguishable StatusErrors.
func (s *Service) List(ctx context.Context) ([]*Bill, error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	SortByDateDesc(bills)

	return bills, nil
}

// SubmitParams are the validated form values of a new bill. Validation is
// the caller's job; Submit assumes the guards already passed.
type SubmitParams struct {
	Email      string
	Name       string
	Amount     int64
	Date       string
	VAT        string
	Pct        int
	Commentary string
	FileName   string
	File       io.Reader
}

// Submit persists a new bill in two sequential phases: upload the receipt,
// then save the structured record referencing it. The record only exists
// once both phases succeed. If the save phase fails the uploaded file is
// left orphaned; there is no compensating delete.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Bill, error) {
	created, err := s.store.CreateBill(ctx, CreateParams{
		Email:    params.Email,
		FileName: params.FileName,
		File:     params.File,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading receipt: %w", err)
	}

	fileName := created.FileName
	if fileName == "" {
		fileName = params.FileName
	}

	b := &Bill{
		ID:         created.BillID(),
		Email:      params.Email,
		Type:       DefaultType,
		Name:       params.Name,
		Amount:     params.Amount,
		Date:       params.Date,
		VAT:        params.VAT,
		Pct:        params.Pct,
		Commentary: params.Commentary,
		FileURL:    created.FileURL,
		FileName:   fileName,
		Status:     StatusPending,
	}

	saved, err := s.store.UpdateBill(ctx, b)
	if err != nil {
		slog.Error("bill save failed after upload, receipt is orphaned",
			"fileUrl", created.FileURL, "error", err)
		return nil, fmt.Errorf("saving bill: %w", err)
	}

	return saved, nil
}
