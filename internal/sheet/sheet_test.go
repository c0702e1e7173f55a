// internal/sheet/sheet_test.go
package sheet

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipients.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "Name, Email ,CC\nAda,ada@example.com,team@example.com\nGrace,grace@example.com,\n")

	table, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"name", "email", "cc"}
	if len(table.Headers) != len(want) {
		t.Fatalf("headers = %v", table.Headers)
	}
	for i, h := range want {
		if table.Headers[i] != h {
			t.Errorf("header %d = %q, want %q (lowercased and trimmed)", i, table.Headers[i], h)
		}
	}

	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0]["email"] != "ada@example.com" {
		t.Errorf("row 0 email = %q", table.Rows[0]["email"])
	}
	if table.Rows[1]["cc"] != "" {
		t.Errorf("row 1 cc = %q, want empty", table.Rows[1]["cc"])
	}
}

func TestReadCSVSkipsEmptyRows(t *testing.T) {
	path := writeTempCSV(t, "name,email\nAda,ada@example.com\n,\n  ,  \nGrace,grace@example.com\n")

	table, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("got %d rows, want 2 (blank rows dropped)", len(table.Rows))
	}
}

func TestReadCSVPadsShortRows(t *testing.T) {
	path := writeTempCSV(t, "name,email,cc\nAda,ada@example.com\n")

	table, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows", len(table.Rows))
	}
	if got, ok := table.Rows[0]["cc"]; !ok || got != "" {
		t.Errorf("missing cell = %q (present %v), want empty string", got, ok)
	}
}

func TestReadHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "name,email\n")

	table, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(table.Rows))
	}
}

func TestReadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipients.txt")
	if err := os.WriteFile(path, []byte("whatever"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
