package errkind

import (
	"errors"
	"testing"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := New(EndOfInput, "rle.Decoder.Get")
	if !errors.Is(err, ErrEndOfInput) {
		t.Fatalf("expected errors.Is to match ErrEndOfInput")
	}
	if errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("did not expect errors.Is to match ErrInvalidFormat")
	}
}

func TestIsHelper(t *testing.T) {
	err := Wrap(InvalidFormat, "bitio.Reader.GetVLQ", errors.New("continuation bit never cleared"))
	if !Is(err, InvalidFormat) {
		t.Fatalf("expected Is(err, InvalidFormat) to be true")
	}
	if Is(err, SizeMismatch) {
		t.Fatalf("did not expect Is(err, SizeMismatch) to be true")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(General, "page.Reader.Next", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the wrapped cause")
	}
}

func TestErrorfMessage(t *testing.T) {
	err := Errorf(UnsupportedEncoding, "delta.NewDecoder", "type %s not supported", "FLOAT")
	want := "delta.NewDecoder: unsupported encoding: type FLOAT not supported"
	if err.Error() != want {
		t.Fatalf("want=%q got=%q", want, err.Error())
	}
}
