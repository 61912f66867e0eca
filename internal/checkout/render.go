package checkout

import (
	"fmt"
	"strings"

	"github.com/openkasse/cashierd/internal/domain"
)

// RenderMarkdown formats a receipt as the markdown document shown on the
// terminal and handed to the printer.
func RenderMarkdown(receipt *domain.Receipt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### Your purchase from %s\n\n", receipt.PaidAt.Format("02.01.2006"))
	b.WriteString("| Article | Quantity | Unit Price | Total in CHF |\n")
	b.WriteString("|--|--|--|--|\n")
	for _, item := range receipt.Items {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			item.ArticleName, item.Quantity, item.UnitPrice, item.LineTotal())
	}
	fmt.Fprintf(&b, "|**Total**|||**%s**|\n\n", receipt.Total())
	fmt.Fprintf(&b, "Paid at: %s\n", receipt.PaidAt.Format("02.01.2006 15:04"))
	b.WriteString("Thank you very much for your purchase!")

	return b.String()
}
