package view

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/bill"
)

func writeReceipt(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o600))

	return path
}

// A store with no expectations: any call fails the test.
func strictModel(t *testing.T) NewBillModel {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	return NewNewBillModel(bill.NewService(bill.NewMockStore(ctrl)), "e@e")
}

func TestNewBill_RejectsNonImageReceipt(t *testing.T) {
	m := strictModel(t)

	m, _ = m.handleFileSelected(writeReceipt(t, "billFileMock.txt"))

	assert.Equal(t, alertInvalidReceipt, m.alert)
	assert.False(t, m.imageValid)
	assert.Empty(t, m.fileName)
	assert.Empty(t, m.filePath)
	assert.Equal(t, newBillStateFile, m.state)
}

func TestNewBill_AcceptsImageReceipt(t *testing.T) {
	tests := []string{"billFileMock.png", "scan.jpg", "scan.jpeg", "SCAN.PNG"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			m := strictModel(t)

			m, cmd := m.handleFileSelected(writeReceipt(t, name))

			assert.Empty(t, m.alert)
			assert.True(t, m.imageValid)
			assert.Equal(t, name, m.fileName)
			assert.Equal(t, newBillStateForm, m.state)
			assert.NotNil(t, cmd)
		})
	}
}

func TestNewBill_SubmitGuards(t *testing.T) {
	type fields struct {
		imageValid bool
		date       string
		amount     string
		pct        string
	}

	tests := []struct {
		name   string
		fields fields
	}{
		{name: "NoFile", fields: fields{imageValid: false, date: "1998-02-12", amount: "199", pct: "20"}},
		{name: "NoDate", fields: fields{imageValid: true, date: "", amount: "199", pct: "20"}},
		{name: "MalformedDate", fields: fields{imageValid: true, date: "12/02/1998", amount: "199", pct: "20"}},
		{name: "NoAmount", fields: fields{imageValid: true, date: "1998-02-12", amount: "", pct: "20"}},
		{name: "NonIntegerAmount", fields: fields{imageValid: true, date: "1998-02-12", amount: "beaucoup", pct: "20"}},
		{name: "NoPct", fields: fields{imageValid: true, date: "1998-02-12", amount: "199", pct: ""}},
		{name: "NonIntegerPct", fields: fields{imageValid: true, date: "1998-02-12", amount: "199", pct: "vingt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Strict mock: the guard must keep every call away from the store.
			m := strictModel(t)
			m.state = newBillStateForm
			m.imageValid = tt.fields.imageValid
			m.formName = "Jest test field"
			m.formDate = tt.fields.date
			m.formAmount = tt.fields.amount
			m.formPct = tt.fields.pct

			if tt.fields.imageValid {
				m.fileName = "billFileMock.png"
				m.filePath = writeReceipt(t, "billFileMock.png")
			}

			m, _ = m.trySubmit()

			// Silent no-op: still on the form, values kept, no alert raised.
			assert.Equal(t, newBillStateForm, m.state)
			assert.Empty(t, m.alert)
			assert.Equal(t, "Jest test field", m.formName)
		})
	}
}

func TestNewBill_SubmitHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := bill.NewMockStore(ctrl)

	upload := store.EXPECT().
		CreateBill(gomock.Any(), gomock.Any()).
		Return(&bill.CreateResult{
			ID:       "47qA",
			FileURL:  "http://localhost:5678/files/billFileMock.png",
			FileName: "billFileMock.png",
		}, nil)
	store.EXPECT().
		UpdateBill(gomock.Any(), gomock.Any()).
		After(upload).
		DoAndReturn(func(_ any, b *bill.Bill) (*bill.Bill, error) {
			assert.Equal(t, "e@e", b.Email)
			assert.Equal(t, int64(199), b.Amount)
			assert.Equal(t, 20, b.Pct)
			assert.Equal(t, bill.StatusPending, b.Status)
			return b, nil
		})

	m := NewNewBillModel(bill.NewService(store), "e@e")
	m, _ = m.handleFileSelected(writeReceipt(t, "billFileMock.png"))
	require.True(t, m.imageValid)

	m.form = nil // values are driven directly below
	m.formName = "Jest test field"
	m.formDate = "1998-02-12"
	m.formAmount = "199"
	m.formPct = "20"

	m, cmd := m.trySubmit()
	assert.Equal(t, newBillStateSubmitting, m.state)
	require.NotNil(t, cmd)

	msg := cmd()
	result, ok := msg.(submitResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)

	// Success navigates back to the bill list.
	model, navCmd := m.Update(result)
	m = model.(NewBillModel)
	require.NotNil(t, navCmd)
	assert.Equal(t, NavigateMsg{Path: PathBills}, navCmd())
}

func TestNewBill_SubmitFailureStaysOnForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := bill.NewMockStore(ctrl)
	store.EXPECT().
		CreateBill(gomock.Any(), gomock.Any()).
		Return(&bill.CreateResult{ID: "x", FileURL: "u", FileName: "f.png"}, nil)
	store.EXPECT().
		UpdateBill(gomock.Any(), gomock.Any()).
		Return(nil, &bill.StatusError{Code: 404})

	m := NewNewBillModel(bill.NewService(store), "e@e")
	m, _ = m.handleFileSelected(writeReceipt(t, "f.png"))

	m.form = nil
	m.formName = "Jest test field"
	m.formDate = "1998-02-12"
	m.formAmount = "199"
	m.formPct = "20"

	m, cmd := m.trySubmit()
	require.NotNil(t, cmd)

	msg := cmd()
	res, isResult := msg.(submitResultMsg)
	require.True(t, isResult)
	require.Error(t, res.err)

	model, _ := m.Update(res)
	m = model.(NewBillModel)

	// The rejection is observable and the form view is still mounted.
	assert.Equal(t, newBillStateForm, m.state)
	assert.Contains(t, m.status, "Erreur 404")
	assert.Equal(t, "Jest test field", m.formName)
}

func TestNewBill_IgnoresInputWhileSubmitting(t *testing.T) {
	m := strictModel(t)
	m.state = newBillStateSubmitting

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(NewBillModel)

	assert.Equal(t, newBillStateSubmitting, m.state)
	assert.Nil(t, cmd)
}
