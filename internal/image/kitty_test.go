package image

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arinmd/termcat/internal/theme"
)

type stubFetcher struct {
	data     []byte
	mimeType string
	err      error
}

func (s stubFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	return s.data, s.mimeType, s.err
}

func TestKittyRequiresPixelSize(t *testing.T) {
	err := Kitty{}.WriteInlineImage(context.Background(), &bytes.Buffer{}, stubFetcher{}, "file:///a.png", theme.TerminalSize{Columns: 80, Rows: 24})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("WriteInlineImage without pixel size = %v, want ErrUnsupported", err)
	}
}

func TestKittyWritesAPCSequence(t *testing.T) {
	data, err := encodePNG(makeTestPNG(4, 4))
	if err != nil {
		t.Fatalf("encodePNG: %v", err)
	}
	var buf bytes.Buffer
	size := theme.TerminalSize{Columns: 80, Rows: 24, Pixels: &theme.PixelSize{Width: 400, Height: 400}}
	if err := (Kitty{}).WriteInlineImage(context.Background(), &buf, stubFetcher{data: data}, "file:///a.png", size); err != nil {
		t.Fatalf("WriteInlineImage: %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "\x1b_Ga=T,t=d,f=100,m=") {
		t.Fatalf("WriteInlineImage output = %q, want Kitty APC prefix", got)
	}
	if !strings.HasSuffix(got, "\x1b\\") {
		t.Fatalf("WriteInlineImage output = %q, want APC terminator", got)
	}
}

func TestWriteKittyChunksSplitsLargePayload(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), kittyChunkSize*2+10)
	var buf bytes.Buffer
	if err := writeKittyChunks(&buf, payload); err != nil {
		t.Fatalf("writeKittyChunks: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "m=0;") != 1 {
		t.Fatalf("writeKittyChunks output has %d final chunks (m=0), want exactly 1: %q", strings.Count(out, "m=0;"), out)
	}
	if strings.Count(out, "m=1;") < 1 {
		t.Fatalf("writeKittyChunks produced no continuation chunks (m=1) for a multi-chunk payload")
	}
}

func TestWriteKittyChunksSinglePayloadIsOneChunk(t *testing.T) {
	var buf bytes.Buffer
	if err := writeKittyChunks(&buf, []byte("small")); err != nil {
		t.Fatalf("writeKittyChunks: %v", err)
	}
	if strings.Count(buf.String(), "\x1b_G") != 1 {
		t.Fatalf("writeKittyChunks(small payload) = %q, want exactly one APC chunk", buf.String())
	}
}
