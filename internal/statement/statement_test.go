package statement

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "march.csv"), 10)
	writeFile(t, filepath.Join(dir, "zerodha", "holdings.XLSX"), 10)
	writeFile(t, filepath.Join(dir, "card.pdf"), 10)
	writeFile(t, filepath.Join(dir, "notes.txt"), 10)
	writeFile(t, filepath.Join(dir, ".cache", "old.csv"), 10)

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []struct{ name, typ string }{
		{"card.pdf", TypePDF},
		{"march.csv", TypeCSV},
		{"holdings.XLSX", TypeExcel},
	}
	if len(files) != len(want) {
		t.Fatalf("Scan found %d files, want %d: %+v", len(files), len(want), files)
	}
	for i, w := range want {
		if files[i].Name != w.name || files[i].Type != w.typ {
			t.Errorf("files[%d] = %s/%s, want %s/%s", i, files[i].Name, files[i].Type, w.name, w.typ)
		}
	}
}

func TestScanMissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if err != nil || files != nil {
		t.Fatalf("Scan(missing) = %v, %v; want nil, nil", files, err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "ok.xls")
	empty := filepath.Join(dir, "empty.csv")
	big := filepath.Join(dir, "big.pdf")
	other := filepath.Join(dir, "x.doc")
	writeFile(t, good, 100)
	writeFile(t, empty, 0)
	writeFile(t, big, MaxSize+1)
	writeFile(t, other, 10)

	f, err := Validate(good)
	if err != nil {
		t.Fatalf("Validate(good): %v", err)
	}
	if f.Type != TypeExcel || f.Size != 100 {
		t.Fatalf("Validate(good) = %+v", f)
	}

	tests := []struct {
		path string
		want error
	}{
		{empty, ErrEmpty},
		{big, ErrTooLarge},
		{other, ErrUnsupported},
	}
	for _, tt := range tests {
		if _, err := Validate(tt.path); !errors.Is(err, tt.want) {
			t.Errorf("Validate(%s) = %v, want %v", filepath.Base(tt.path), err, tt.want)
		}
	}
	if _, err := Validate(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("Validate(missing) = nil, want error")
	}
}

func TestValidateAtLimit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "limit.csv")
	writeFile(t, p, MaxSize)
	if _, err := Validate(p); err != nil {
		t.Fatalf("Validate at exactly MaxSize: %v", err)
	}
}

func TestOpen(t *testing.T) {
	p := filepath.Join(t.TempDir(), "march.csv")
	if err := os.WriteFile(p, []byte("date,amount\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	up, closer, f, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closer.Close()

	if up.Filename != "march.csv" || f.Type != TypeCSV {
		t.Fatalf("Open = %+v / %+v", up, f)
	}
	data, _ := io.ReadAll(up.Content)
	if string(data) != "date,amount\n" {
		t.Fatalf("content = %q", data)
	}
}

func TestTypeFor(t *testing.T) {
	for path, want := range map[string]string{
		"a.csv": TypeCSV, "a.Xls": TypeExcel, "a.xlsx": TypeExcel, "a.pdf": TypePDF,
	} {
		got, err := TypeFor(path)
		if err != nil || got != want {
			t.Errorf("TypeFor(%s) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := TypeFor("a"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("TypeFor(no ext) = %v, want ErrUnsupported", err)
	}
}
