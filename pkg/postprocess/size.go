package postprocess

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

var errUnexpectedShape = errors.New("unexpected size table shape")

// Size reformats the output of llvm-size. Both the SysV layout (`-A`) and the Berkeley
// layout (the default) are understood: totals are recomputed from the section rows and
// sizes are shown with binary-prefixed units next to the raw values. Output of any other
// shape is returned unchanged.
func Size(stdout []byte) []byte {
	lines := strings.Split(strings.TrimRight(string(stdout), "\n"), "\n")

	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	if first == len(lines) {
		return stdout
	}

	var (
		out []byte
		err error
	)

	if fields := strings.Fields(lines[first]); len(fields) >= 6 && fields[0] == "text" {
		out, err = formatBerkeley(lines[first:])
	} else {
		out, err = formatSysV(lines[first:])
	}

	if err != nil {
		return stdout
	}

	return out
}

// parseNumber parses a number printed in decimal, hexadecimal (`0x` prefix) or
// octal (leading zero) radix.
func parseNumber(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

// formatLike prints v in the radix sample is printed in.
func formatLike(sample string, v uint64) string {
	switch {
	case strings.HasPrefix(sample, "0x"):
		return fmt.Sprintf("%#x", v)
	case len(sample) > 1 && sample[0] == '0':
		return fmt.Sprintf("%#o", v)
	default:
		return strconv.FormatUint(v, 10)
	}
}

func humanSize(v uint64) string {
	return units.BytesSize(float64(v))
}

type sysvSection struct {
	name, size, addr string
	value            uint64
}

// formatSysV handles one or more blocks of:
//
//	file  :
//	section      size   addr
//	.text        1234   4096
//	Total        1234
func formatSysV(lines []string) ([]byte, error) {
	var buf bytes.Buffer

	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		header := lines[i]
		if !strings.HasSuffix(strings.TrimSpace(header), ":") || i+1 >= len(lines) {
			return nil, errUnexpectedShape
		}
		if columns := strings.Fields(lines[i+1]); len(columns) != 3 || columns[0] != "section" {
			return nil, errUnexpectedShape
		}
		i += 2

		var (
			sections []sysvSection
			total    string
		)

		for ; i < len(lines); i++ {
			fields := strings.Fields(lines[i])
			if len(fields) == 2 && fields[0] == "Total" {
				total = fields[1]
				i++
				break
			}
			if len(fields) != 3 {
				return nil, errUnexpectedShape
			}

			value, err := parseNumber(fields[1])
			if err != nil {
				return nil, errUnexpectedShape
			}
			if _, err := parseNumber(fields[2]); err != nil {
				return nil, errUnexpectedShape
			}

			sections = append(sections, sysvSection{name: fields[0], size: fields[1], addr: fields[2], value: value})
		}

		if total == "" {
			return nil, errUnexpectedShape
		}

		var sum uint64
		t := table{align: []alignment{alignLeft, alignRight, alignRight, alignRight}}
		t.add("section", "size", "", "addr")
		for _, s := range sections {
			sum += s.value
			t.add(s.name, s.size, humanSize(s.value), s.addr)
		}
		t.add("Total", formatLike(total, sum), humanSize(sum), "")

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(header)
		buf.WriteString("\n")
		t.write(&buf)
	}

	if buf.Len() == 0 {
		return nil, errUnexpectedShape
	}

	return buf.Bytes(), nil
}

// formatBerkeley handles the table:
//
//	text    data     bss     dec     hex filename
//	1234     560      78    1872     750 app
func formatBerkeley(lines []string) ([]byte, error) {
	t := table{align: []alignment{alignRight, alignRight, alignRight, alignRight, alignLeft}}
	t.add("text", "data", "bss", "total", "filename")

	var sums [3]uint64
	rows := 0

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 6 {
			return nil, errUnexpectedShape
		}

		filename := strings.Join(fields[5:], " ")
		if filename == "(TOTALS)" {
			continue
		}

		var row [3]uint64
		for i := range row {
			v, err := parseNumber(fields[i])
			if err != nil {
				return nil, errUnexpectedShape
			}
			row[i] = v
			sums[i] += v
		}

		t.add(humanSize(row[0]), humanSize(row[1]), humanSize(row[2]), humanSize(row[0]+row[1]+row[2]), filename)
		rows++
	}

	if rows == 0 {
		return nil, errUnexpectedShape
	}
	if rows > 1 {
		t.add(humanSize(sums[0]), humanSize(sums[1]), humanSize(sums[2]), humanSize(sums[0]+sums[1]+sums[2]), "(TOTALS)")
	}

	var buf bytes.Buffer
	t.write(&buf)

	return buf.Bytes(), nil
}

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

// table lays out rows of cells in columns separated by two spaces. Trailing empty cells
// are not padded.
type table struct {
	align []alignment
	rows  [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(buf *bytes.Buffer) {
	widths := make([]int, len(t.align))
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for _, row := range t.rows {
		last := len(row) - 1
		for last > 0 && row[last] == "" {
			last--
		}

		var line strings.Builder
		for i := 0; i <= last; i++ {
			if i > 0 {
				line.WriteString("  ")
			}

			pad := strings.Repeat(" ", widths[i]-len(row[i]))
			switch {
			case t.align[i] == alignRight:
				line.WriteString(pad + row[i])
			case i == last:
				line.WriteString(row[i])
			default:
				line.WriteString(row[i] + pad)
			}
		}

		buf.WriteString(line.String())
		buf.WriteString("\n")
	}
}
