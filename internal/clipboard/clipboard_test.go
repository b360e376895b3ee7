package clipboard_test

import (
	"errors"
	"io"
	"testing"

	"github.com/yiblet/txtreader/internal/clipboard"
	"github.com/yiblet/txtreader/internal/clipboard/mockboard"
)

func TestWriteTextReadText(t *testing.T) {
	board := mockboard.New()

	if err := clipboard.WriteText(board, "第一章\nline 2"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if string(board.GetData()) != "第一章\nline 2" {
		t.Errorf("Unexpected clipboard data %q", board.GetData())
	}

	text, err := clipboard.ReadText(board)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "第一章\nline 2" {
		t.Errorf("ReadText = %q", text)
	}
}

func TestReadTextEmpty(t *testing.T) {
	board := mockboard.New()
	board.SetData([]byte(" \n\t"))

	if _, err := clipboard.ReadText(board); !errors.Is(err, clipboard.ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
}

type unsupported struct{}

func (unsupported) Read() (io.ReadCloser, error) { return nil, errors.New("unreachable") }
func (unsupported) Write(io.Reader) error        { return errors.New("unreachable") }
func (unsupported) IsSupported() bool            { return false }

func TestUnsupportedClipboard(t *testing.T) {
	if _, err := clipboard.ReadText(unsupported{}); err == nil {
		t.Error("Expected error reading unsupported clipboard")
	}
	if err := clipboard.WriteText(unsupported{}, "x"); err == nil {
		t.Error("Expected error writing unsupported clipboard")
	}
}

func TestMockClipboardSatisfiesInterface(t *testing.T) {
	var _ clipboard.Clipboard = mockboard.New()
}
