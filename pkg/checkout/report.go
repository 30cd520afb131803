package checkout

import (
	"bufio"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// printer buffers report lines and keeps the first write error.
type printer struct {
	w   *bufio.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: bufio.NewWriter(w)}
}

func (p *printer) Println(s string) {
	if p.err != nil {
		return
	}
	_, p.err = p.w.WriteString(s + "\n")
}

func (p *printer) Printf(format string, args ...any) {
	p.Println(fmt.Sprintf(format, args...))
}

func (p *printer) Flush() error {
	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

// money formats v with two decimals, rounding half away from zero on the
// shortest decimal form of v.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func paymentStatus(approved bool) string {
	if approved {
		return "Successful"
	}
	return "Failed"
}
