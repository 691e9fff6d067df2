package memblock

import (
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Dump writes a human-readable rendering of the whole ledger state to w:
// both sets, entry by entry, with counts and totals. Intended for boot logs
// and for memctl; the format is not stable.
func (l *Ledger) Dump(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "search direction: %s\n", direction(l.bottomUp))
	l.memory.dump(w, p)
	l.reserved.dump(w, p)
}

func direction(bottomUp bool) string {
	if bottomUp {
		return "bottom-up"
	}
	return "top-down"
}

func (s *RegionSet) dump(w io.Writer, p *message.Printer) {
	p.Fprintf(w, "%s: %d/%d regions, %s total\n",
		s.name, s.cnt, s.Capacity(), humanize.IBytes(uint64(s.totalSize)))
	for i := 0; i < s.cnt; i++ {
		r := s.regions[i]
		p.Fprintf(w, "  %s[%d]\t[%#x-%#x) %s", s.name, i, r.Base, r.End(), humanize.IBytes(uint64(r.Size)))
		if r.Node != NodeNone {
			p.Fprintf(w, " node=%d", r.Node)
		}
		if r.Flags != 0 {
			p.Fprintf(w, " flags=%#x", uint32(r.Flags))
		}
		p.Fprintf(w, "\n")
	}
}
