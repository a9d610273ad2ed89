package diferenco

import (
	"strconv"
	"strings"

	"github.com/sad-cli/sad/modules/diferenco/color"
)

var operationChar = map[Operation]byte{
	Insert: '+',
	Delete: '-',
	Equal:  ' ',
}

var operationColorKey = map[Operation]color.ColorKey{
	Insert: color.New,
	Delete: color.Old,
	Equal:  color.Context,
}

func writeHunkHeader(b *strings.Builder, cc color.ColorConfig, h *Hunk) {
	r := h.Range()
	b.WriteString(cc[color.Frag])
	b.WriteString("@@ -")
	b.WriteString(strconv.Itoa(r.BeforeStart + 1))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(r.BeforeLen))
	b.WriteString(" +")
	b.WriteString(strconv.Itoa(r.AfterStart + 1))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(r.AfterLen))
	b.WriteString(" @@")
	b.WriteString(cc.Reset(color.Frag))
	b.WriteByte('\n')
}

func writeLine(b *strings.Builder, cc color.ColorConfig, l *Line) {
	key := operationColorKey[l.Kind]
	b.WriteString(cc[key])
	b.WriteByte(operationChar[l.Kind])
	if strings.HasSuffix(l.Content, "\n") {
		b.WriteString(strings.TrimSuffix(l.Content, "\n"))
		b.WriteString(cc.Reset(key))
		b.WriteByte('\n')
		return
	}
	b.WriteString(l.Content)
	b.WriteString(cc.Reset(key))
	b.WriteString("\n\\ No newline at end of file\n")
}

// Render writes d as standard unified-diff text: a "diff --git"/"---"/"+++"
// header naming path, followed by each hunk whose Range is in selected (or
// every hunk, when selected is nil). cc may be nil, meaning no color.
func (d *Diff) Render(path string, cc color.ColorConfig, selected map[DiffRange]bool) string {
	if cc == nil {
		cc = color.ColorConfig{}
	}
	b := &strings.Builder{}
	b.WriteString(cc[color.Meta])
	b.WriteString("diff --git ")
	b.WriteString(path)
	b.WriteByte(' ')
	b.WriteString(path)
	b.WriteString(cc.Reset(color.Meta))
	b.WriteByte('\n')
	b.WriteString(cc[color.Meta])
	b.WriteString("--- ")
	b.WriteString(path)
	b.WriteString(cc.Reset(color.Meta))
	b.WriteByte('\n')
	b.WriteString(cc[color.Meta])
	b.WriteString("+++ ")
	b.WriteString(path)
	b.WriteString(cc.Reset(color.Meta))
	b.WriteByte('\n')
	for _, h := range d.Hunks {
		if selected != nil && !selected[h.Range()] {
			continue
		}
		writeHunkHeader(b, cc, h)
		for i := range h.Lines {
			writeLine(b, cc, &h.Lines[i])
		}
	}
	return b.String()
}
