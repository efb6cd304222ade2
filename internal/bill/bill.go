package bill

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Type is the expense category of a bill.
type Type string

const (
	TypeTransports  Type = "Transports"
	TypeRestaurants Type = "Restaurants et bars"
	TypeHotel       Type = "Hôtel et logement"
	TypeServices    Type = "Services en ligne"
	TypeIT          Type = "IT et électronique"
	TypeEquipement  Type = "Equipement et matériel"
	TypeFournitures Type = "Fournitures de bureau"
)

// DefaultType is used when the form carries no category selector.
const DefaultType = TypeTransports

// Status represents the lifecycle state of a bill.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRefused  Status = "refused"
)

// Label returns the localized display label for a status.
// Unknown statuses are shown as-is.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusAccepted:
		return "Accepté"
	case StatusRefused:
		return "Refusé"
	}

	return string(s)
}

// Bill is a persisted expense record. The store owns canonical state;
// everything held here is a display-local copy.
//
// Date is kept as the raw canonical ISO string rather than a time.Time so
// that a malformed value coming back from the store survives until render,
// where it is shown as-is instead of crashing the batch.
type Bill struct {
	ID         string `json:"id,omitempty"`
	Email      string `json:"email,omitempty"`
	Type       Type   `json:"type"`
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	Date       string `json:"date"`
	VAT        string `json:"vat"`
	Pct        int    `json:"pct"`
	Commentary string `json:"commentary"`
	FileURL    string `json:"fileUrl,omitempty"`
	FileName   string `json:"fileName"`
	Status     Status `json:"status"`
}

var frenchMonths = [...]string{
	"Jan.", "Fév.", "Mar.", "Avr.", "Mai.", "Jui.",
	"Juil.", "Aoû.", "Sep.", "Oct.", "Nov.", "Déc.",
}

// FormatDate renders a canonical ISO date as a short localized string,
// e.g. "1998-02-12" -> "12 Fév. 98". A value that does not parse is
// returned unchanged so a single bad record never aborts a render.
func FormatDate(raw string) string {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return raw
	}

	return fmt.Sprintf("%d %s %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100)
}

// SortByDateDesc orders bills most recent first, comparing the canonical
// date field and never the display string. Bills whose dates do not parse
// sort after all dated ones, keeping their relative order.
func SortByDateDesc(bills []*Bill) {
	parsed := make(map[*Bill]time.Time, len(bills))

	for _, b := range bills {
		if t, err := time.Parse(time.DateOnly, b.Date); err == nil {
			parsed[b] = t
		}
	}

	sort.SliceStable(bills, func(i, j int) bool {
		ti, iok := parsed[bills[i]]
		tj, jok := parsed[bills[j]]

		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}

		return ti.After(tj)
	})
}

var receiptExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ValidReceiptName reports whether a file name carries an accepted
// receipt image extension. The check is case-insensitive.
func ValidReceiptName(name string) bool {
	return receiptExtensions[strings.ToLower(filepath.Ext(name))]
}
