package aggregate

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gyeh/hisdash/internal/model"
)

// contextTopN bounds the rankings quoted in the assistant context.
const contextTopN = 5

// ContextText renders the short statistics summary handed to the assistant
// alongside a question. It is display text, not a parsed format.
func ContextText(s model.Summary, services, departments []model.Group) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	p.Fprintf(&b, "Tổng viện phí: %.0f đ, BN: %d", s.TotalCost, s.TotalPatients)
	p.Fprintf(&b, ", Lượt ghi nhận: %d", s.TotalRecords)
	p.Fprintf(&b, ", Chi phí TB/BN: %.0f đ", s.AvgCostPerPatient)
	p.Fprintf(&b, ", Số ngày điều trị TB: %.1f", s.AvgDays)

	writeTop(p, &b, "Top khoa", departments)
	writeTop(p, &b, "Top dịch vụ", services)

	if len(s.OutcomeRatios) > 0 {
		b.WriteString(", Kết quả điều trị: ")
		for i, o := range s.OutcomeRatios {
			if i > 0 {
				b.WriteString("; ")
			}
			p.Fprintf(&b, "%s %d", o.Name, o.Value)
		}
	}
	return b.String()
}

func writeTop(p *message.Printer, b *strings.Builder, title string, groups []model.Group) {
	groups = Top(groups, contextTopN)
	if len(groups) == 0 {
		return
	}
	b.WriteString(", " + title + ": ")
	for i, g := range groups {
		if i > 0 {
			b.WriteString("; ")
		}
		p.Fprintf(b, "%s (%.0f đ, %d lượt)", g.Key, g.TotalCost, g.Count)
	}
}
