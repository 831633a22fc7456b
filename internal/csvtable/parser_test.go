package csvtable

import "testing"

func TestParseBasic(t *testing.T) {
	text := "product_id,product_name,price\n1,Milk,2.50\n2,Bread,1.20\n"
	rows := Parse(text)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["product_id"] != "1" || rows[0]["product_name"] != "Milk" || rows[0]["price"] != "2.50" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1]["product_name"] != "Bread" {
		t.Fatalf("unexpected second row: %v", rows[1])
	}
}

func TestParseTrimsHeadersAndValues(t *testing.T) {
	text := " product_id , product_name \n 1 , Milk \n"
	rows := Parse(text)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["product_id"] != "1" {
		t.Fatalf("header or value not trimmed: %v", rows[0])
	}
	if rows[0]["product_name"] != "Milk" {
		t.Fatalf("value not trimmed: %v", rows[0])
	}
}

func TestParseShortLineOmitsTrailingKeys(t *testing.T) {
	text := "a,b,c\n1,2\n"
	rows := Parse(text)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if _, ok := rows[0]["c"]; ok {
		t.Fatalf("expected key c to be absent, row: %v", rows[0])
	}
	if rows[0]["a"] != "1" || rows[0]["b"] != "2" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n"} {
		rows := Parse(text)
		if len(rows) != 0 {
			t.Fatalf("expected no rows for %q, got %d", text, len(rows))
		}
	}
}

func TestParseHeaderOnly(t *testing.T) {
	rows := Parse("a,b,c\n")
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestParseRowCountMatchesLines(t *testing.T) {
	text := "a,b\n1,2\n3,4\n5,6\n7,8\n"
	rows := Parse(text)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
}
