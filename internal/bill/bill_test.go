package bill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/bill"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "WellFormed", raw: "2004-04-04", want: "4 Avr. 04"},
		{name: "FixtureDate", raw: "1998-02-12", want: "12 Fév. 98"},
		{name: "EndOfYear", raw: "2021-12-31", want: "31 Déc. 21"},
		{name: "MalformedFallsBackToRaw", raw: "not-a-date", want: "not-a-date"},
		{name: "EmptyFallsBackToRaw", raw: "", want: ""},
		{name: "PartialDateFallsBackToRaw", raw: "2004-04", want: "2004-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bill.FormatDate(tt.raw))
		})
	}
}

func TestSortByDateDesc(t *testing.T) {
	bills := []*bill.Bill{
		{Name: "a", Date: "2001-01-01"},
		{Name: "b", Date: "2004-04-04"},
		{Name: "garbage", Date: "oops"},
		{Name: "c", Date: "2003-03-03"},
		{Name: "d", Date: "2002-02-02"},
	}

	bill.SortByDateDesc(bills)

	got := make([]string, len(bills))
	for i, b := range bills {
		got[i] = b.Name
	}

	// Most recent first, unparsable dates last.
	assert.Equal(t, []string{"b", "c", "d", "a", "garbage"}, got)

	// Adjacent parsable pairs are non-increasing.
	for i := 0; i < len(bills)-2; i++ {
		assert.GreaterOrEqual(t, bills[i].Date, bills[i+1].Date)
	}
}

func TestSortByDateDesc_StableForUnparsable(t *testing.T) {
	bills := []*bill.Bill{
		{Name: "x", Date: "bad-1"},
		{Name: "y", Date: "bad-2"},
		{Name: "z", Date: "2020-05-05"},
	}

	bill.SortByDateDesc(bills)

	assert.Equal(t, "z", bills[0].Name)
	assert.Equal(t, "x", bills[1].Name)
	assert.Equal(t, "y", bills[2].Name)
}

func TestValidReceiptName(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		valid bool
	}{
		{name: "PNG", file: "billFileMock.png", valid: true},
		{name: "JPG", file: "receipt.jpg", valid: true},
		{name: "JPEG", file: "receipt.jpeg", valid: true},
		{name: "UppercaseExtension", file: "SCAN.PNG", valid: true},
		{name: "MixedCase", file: "scan.JpEg", valid: true},
		{name: "Text", file: "billFileMock.txt", valid: false},
		{name: "PDF", file: "facture.pdf", valid: false},
		{name: "NoExtension", file: "facture", valid: false},
		{name: "Empty", file: "", valid: false},
		{name: "TrailingDot", file: "facture.", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, bill.ValidReceiptName(tt.file))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "En attente", bill.StatusPending.Label())
	assert.Equal(t, "Accepté", bill.StatusAccepted.Label())
	assert.Equal(t, "Refusé", bill.StatusRefused.Label())
	assert.Equal(t, "weird", bill.Status("weird").Label())
}

func TestStatusError(t *testing.T) {
	notFound := &bill.StatusError{Code: 404}
	server := &bill.StatusError{Code: 500}

	assert.EqualError(t, notFound, "Erreur 404")
	assert.EqualError(t, server, "Erreur 500")

	assert.True(t, bill.NotFound(notFound))
	assert.False(t, bill.NotFound(server))
	assert.True(t, bill.ServerError(server))
	assert.False(t, bill.ServerError(notFound))
	assert.False(t, bill.NotFound(nil))
}
