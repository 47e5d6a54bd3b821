package qr

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Renderer builds URLs against an external QR image service. The service is
// treated as opaque: we only ever hand the URL to clients, never fetch it.
type Renderer struct {
	base string
	size string
}

func NewRenderer(base string) *Renderer {
	return &Renderer{base: strings.TrimRight(base, "?"), size: "200x200"}
}

type paymentSeed struct {
	UPIID  string  `json:"upi_id"`
	Amount float64 `json:"amount"`
	Name   string  `json:"name"`
	Note   string  `json:"note"`
}

// PaymentArtifactURL renders a scannable payment QR seeded with the payee's
// UPI identifier, the owed amount, the payee name and a fixed note.
func (r *Renderer) PaymentArtifactURL(upiID string, amount float64, payeeName string) string {
	seed := paymentSeed{UPIID: upiID, Amount: amount, Name: payeeName, Note: "Rental Payment"}
	data, _ := json.Marshal(seed)
	return fmt.Sprintf("%s?size=%s&data=%s", r.base, r.size, url.QueryEscape(string(data)))
}
