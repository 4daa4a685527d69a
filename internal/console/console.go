package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/songzhibin97/cryptogainers/internal/models"
)

const separatorWidth = 40

// Printer writes the human readable gainers table.
type Printer struct {
	out  io.Writer
	up   *color.Color
	down *color.Color
}

// NewPrinter colours output only when fatih/color decides the terminal
// supports it (it honours NO_COLOR and non-tty outputs).
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:  out,
		up:   color.New(color.FgGreen),
		down: color.New(color.FgRed),
	}
}

// DisableColor forces plain output.
func (p *Printer) DisableColor() *Printer {
	p.up.DisableColor()
	p.down.DisableColor()
	return p
}

// EnableColor forces ANSI colours even when out is not a terminal.
func (p *Printer) EnableColor() *Printer {
	p.up.EnableColor()
	p.down.EnableColor()
	return p
}

// Print writes a heading followed by one block per entry.
func (p *Printer) Print(entries []models.GainerEntry, topN int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nTop %d Crypto Gainers in the Last 24 Hours:\n\n", topN)
	for _, e := range entries {
		fmt.Fprintf(&b, "Name       : %s\n", e.Name)
		fmt.Fprintf(&b, "Symbol     : %s\n", strings.ToUpper(e.Symbol))
		fmt.Fprintf(&b, "Price      : $%s\n", Grouped(e.CurrentPrice))
		fmt.Fprintf(&b, "24h Change : %s\n", p.Change(e.PriceChangePercentage24h))
		fmt.Fprintf(&b, "Market Cap : $%s\n", Grouped(e.MarketCap))
		b.WriteString(strings.Repeat("-", separatorWidth))
		b.WriteString("\n")
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

// Change renders a 24h change with a direction arrow, green for >= 0 and
// red (absolute value) below zero.
func (p *Printer) Change(change float64) string {
	if change >= 0 {
		return p.up.Sprintf("🔼 %.2f%%", change)
	}
	return p.down.Sprintf("🔽 %.2f%%", -change)
}

// Grouped formats v with thousands separators keeping every significant
// digit of its shortest decimal representation.
func Grouped(v float64) string {
	s := decimal.NewFromFloat(v).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
