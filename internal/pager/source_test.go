package pager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/yiblet/txtreader/internal/logging"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestDecode(t *testing.T) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("héllo 世界"))
	require.NoError(t, err)
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("héllo 世界"))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"plain utf-8", []byte("hello 世界"), "hello 世界"},
		{"utf-8 bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), "abc"},
		{"utf-16 le", utf16le, "héllo 世界"},
		{"utf-16 be", utf16be, "héllo 世界"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_InvalidWithoutFallback(t *testing.T) {
	_, err := Decode([]byte{0xC3, 0x28, 0x80}, "")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestDecode_Fallback(t *testing.T) {
	gbk, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte("第一章 天地"))
	require.NoError(t, err)

	got, err := Decode(gbk, "gb18030")
	require.NoError(t, err)
	assert.Equal(t, "第一章 天地", got)

	_, err = Decode(gbk, "no-such-encoding")
	assert.Error(t, err)
}

func TestFileSource_Load(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, "book.txt", []byte("Once upon a time"))

	text, err := FileSource{}.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "Once upon a time", text)
}

func TestFileSource_Errors(t *testing.T) {
	ctx := context.Background()
	invalid := writeFile(t, "bad.txt", []byte{0xC3, 0x28, 0xA0, 0xA1})

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"empty path", "", ErrEmptyPath},
		{"missing file", filepath.Join(t.TempDir(), "missing.txt"), os.ErrNotExist},
		{"invalid encoding", invalid, ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FileSource{}.Load(ctx, tt.path)
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.path, loadErr.Path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFileSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FileSource{}.Load(ctx, writeFile(t, "book.txt", []byte("x")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_FromFile(t *testing.T) {
	path := writeFile(t, "book.txt", []byte(numbered(5000)))

	p := Open(context.Background(), FileSource{}, path, 2000, DefaultConfig(), WithLogger(logging.Discard()))
	require.False(t, p.Failed())
	assert.Equal(t, 5000, p.Len())
	assert.Equal(t, 3, p.PageCount())
	assert.Equal(t, numbered(5000)[2000:4000], p.CurrentPage())
}
