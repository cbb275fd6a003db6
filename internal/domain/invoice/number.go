package invoice

import (
	"fmt"

	"github.com/opsdesk/portal/internal/types"
)

// FormatNumber builds an invoice number as <prefix><client ref>-<yyyymm>-<seq>
// where seq is the 1-based position of the invoice among the client's
// invoices of that month.
func FormatNumber(prefix, clientRef string, sentOn types.Date, seq int) string {
	return fmt.Sprintf("%s%s-%s-%02d", prefix, clientRef, sentOn.Format("200601"), seq)
}
