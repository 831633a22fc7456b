package csvtable

import "strings"

// Row is one parsed record from delimited source text: column name to raw
// string value. Columns a short line does not cover are absent from the map.
type Row map[string]string

// Parse converts raw delimited text into rows, using the first line as the
// header. The whole text is trimmed first, then split strictly on newline and
// comma. There is no quote or escape handling: the retail exports never quote
// fields, and a value containing a comma shifts every column after it. That is
// a documented limitation of the export format, not something to paper over
// here.
//
// Every header token and every value is trimmed of surrounding whitespace.
// The returned row count always equals the non-header line count.
func Parse(text string) []Row {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []Row{}
	}

	lines := strings.Split(trimmed, "\n")
	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = strings.TrimSpace(values[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}
