package mmap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const testList = "// comment\ncom\nco.uk\n"

func TestReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "public_suffix_list.dat")
	if err := os.WriteFile(name, []byte(testList), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFile[string](name)
	if err != nil {
		t.Fatal(err)
	}
	if data != testList {
		t.Errorf("data = %q, want %q", data, testList)
	}

	if err = Unmap(data); err != nil {
		t.Fatal(err)
	}
}

func TestReadFileBytes(t *testing.T) {
	name := filepath.Join(t.TempDir(), "public_suffix_list.dat")
	if err := os.WriteFile(name, []byte(testList), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFile[[]byte](name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte(testList)) {
		t.Errorf("data = %v, want %v", data, []byte(testList))
	}

	if err = Unmap(data); err != nil {
		t.Fatal(err)
	}
}

func TestReadEmptyFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.dat")
	if err := os.WriteFile(name, nil, 0644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFile[string](name)
	if err != nil {
		t.Fatal(err)
	}
	if data != "" {
		t.Errorf("data = %q, want empty", data)
	}
	if err = Unmap(data); err != nil {
		t.Fatal(err)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := ReadFile[string](filepath.Join(t.TempDir(), "missing.dat")); !os.IsNotExist(err) {
		t.Errorf("ReadFile(missing) error = %v, want not exist", err)
	}
}
