package port

import (
	"os"
	"path/filepath"
	"testing"

	"cozenage/internal/value"
)

func TestInputOutputStringRoundTrip(t *testing.T) {
	in := OpenInputString("hello")
	var got []byte
	for {
		u, err := in.VT.GetOne(in)
		if err != nil {
			t.Fatalf("GetOne: %v", err)
		}
		if u == -1 {
			break
		}
		got = append(got, byte(u))
	}
	if string(got) != "hello" {
		t.Errorf("read back %q, want %q", got, "hello")
	}
}

func TestOutputStringAccumulates(t *testing.T) {
	out := OpenOutputString()
	if _, err := out.VT.PutMany(out, []byte("ab")); err != nil {
		t.Fatalf("PutMany: %v", err)
	}
	if err := out.VT.PutOne(out, '4'); err != nil {
		t.Fatalf("PutOne: %v", err)
	}
	if err := out.VT.PutOne(out, '2'); err != nil {
		t.Fatalf("PutOne: %v", err)
	}
	if got := GetOutputString(out); got != "ab42" {
		t.Errorf("GetOutputString = %q, want %q", got, "ab42")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	in := OpenInputString("xy")
	peeked, err := in.VT.Peek(in)
	if err != nil || peeked != 'x' {
		t.Fatalf("Peek = (%d, %v), want ('x', nil)", peeked, err)
	}
	got, err := in.VT.GetOne(in)
	if err != nil || got != 'x' {
		t.Fatalf("GetOne after Peek = (%d, %v), want ('x', nil)", got, err)
	}
}

func TestInputOutputBytevectorRoundTrip(t *testing.T) {
	in := OpenInputBytevector([]byte{1, 2, 3})
	for _, want := range []int{1, 2, 3} {
		got, err := in.VT.GetOne(in)
		if err != nil || got != want {
			t.Fatalf("GetOne = (%d, %v), want (%d, nil)", got, err, want)
		}
	}
	eof, _ := in.VT.GetOne(in)
	if eof != -1 {
		t.Errorf("GetOne at end = %d, want -1 (EOF)", eof)
	}

	out := OpenOutputBytevector()
	out.VT.PutOne(out, 9)
	out.VT.PutMany(out, []byte{10, 11})
	if got := GetOutputBytevector(out); len(got) != 3 || got[0] != 9 || got[1] != 10 || got[2] != 11 {
		t.Errorf("GetOutputBytevector = %v, want [9 10 11]", got)
	}
}

func TestOpenOutputFileAppendsByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	p, rerr := OpenOutputFile(path)
	if rerr != nil {
		t.Fatalf("OpenOutputFile: %v", rerr)
	}
	p.VT.PutMany(p, []byte("second"))
	Close(p)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "firstsecond" {
		t.Errorf("file contents = %q, want %q (open-output-file appends)", got, "firstsecond")
	}
}

func TestOpenAndTruncOutputFileTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("stale contents"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	p, rerr := OpenAndTruncOutputFile(path)
	if rerr != nil {
		t.Fatalf("OpenAndTruncOutputFile: %v", rerr)
	}
	p.VT.PutMany(p, []byte("new"))
	Close(p)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("file contents = %q, want %q (truncating open)", got, "new")
	}
}

func TestOpenInputFileMissingPathIsError(t *testing.T) {
	_, rerr := OpenInputFile(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if rerr == nil {
		t.Error("OpenInputFile on a missing path should return an error")
	}
}

func TestWithOutputToFileRestoresPreviousPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	prev := CurrentOutput

	WithOutputToFile(path, func() value.Value {
		if CurrentOutput == prev {
			t.Error("CurrentOutput should be rebound to the opened file during the thunk")
		}
		CurrentOutput.VT.PutMany(CurrentOutput, []byte("hi"))
		return value.Unspecified
	})

	if CurrentOutput != prev {
		t.Error("WithOutputToFile should restore the previous CurrentOutput after the thunk returns")
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "hi" {
		t.Errorf("file contents = %q, %v, want %q", got, err, "hi")
	}
}
