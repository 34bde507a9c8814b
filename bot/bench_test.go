package bot

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ArnaudCalmettes/graybench/bench"
	"github.com/ArnaudCalmettes/graybench/imp"
	"github.com/ArnaudCalmettes/graybench/models"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 255, 0, 0, 255
	}
	var data bytes.Buffer
	require.NoError(t, png.Encode(&data, src))

	mux := http.NewServeMux()
	mux.HandleFunc("/red.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(data.Bytes())
	})
	mux.HandleFunc("/garbage.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchImage(t *testing.T) {
	srv := newImageServer(t)

	img, err := fetchImage(srv.Client(), srv.URL+"/red.png", MaxAttachmentSize)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Rect)
	assert.Equal(t, []uint8{255, 0, 0}, img.Pix[:3])

	_, err = fetchImage(srv.Client(), srv.URL+"/missing.png", MaxAttachmentSize)
	assert.EqualError(t, err, "unexpected status: 404 Not Found")

	_, err = fetchImage(srv.Client(), srv.URL+"/garbage.png", MaxAttachmentSize)
	assert.Error(t, err)

	_, err = fetchImage(srv.Client(), srv.URL+"/red.png", 10)
	assert.EqualError(t, err, "larger than 10 bytes")
}

func TestBenchAttachments(t *testing.T) {
	srv := newImageServer(t)
	runner := bench.NewRunner(bench.DefaultConfig(), imp.Converters(), nil)

	atts := []*discordgo.MessageAttachment{
		{Filename: "red.png", URL: srv.URL + "/red.png", Size: 100},
		{Filename: "missing.png", URL: srv.URL + "/missing.png", Size: 100},
		{Filename: "huge.png", URL: srv.URL + "/red.png", Size: MaxAttachmentSize + 1},
	}
	s, warnings, err := benchAttachments(context.Background(), srv.Client(), runner, atts)
	require.NoError(t, err)

	require.Len(t, s.Files, 1)
	assert.Equal(t, "red.png", s.Files[0].Name)
	assert.Len(t, s.Files[0].Measurements, len(imp.Converters()))
	assert.Equal(t, runner.Names(), s.Converters)
	assert.NotZero(t, s.Elapsed)

	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "missing.png")
	assert.Contains(t, warnings[1], "too large")

	// The recorded run keeps every measurement
	run := models.NewRunFromSummary("discord", s)
	assert.Len(t, run.Measurements, len(imp.Converters()))
}

func TestBenchAttachmentsMismatch(t *testing.T) {
	srv := newImageServer(t)
	broken := imp.Converter{
		Name: "broken",
		Convert: func(src *imp.RGB) *image.Gray {
			return image.NewGray(image.Rect(0, 0, 1, 1))
		},
	}
	runner := bench.NewRunner(bench.DefaultConfig(), []imp.Converter{imp.Converters()[0], broken}, nil)

	atts := []*discordgo.MessageAttachment{
		{Filename: "red.png", URL: srv.URL + "/red.png"},
	}
	s, _, err := benchAttachments(context.Background(), srv.Client(), runner, atts)
	var mismatch *bench.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "broken", mismatch.Converter)
	assert.Empty(t, s.Files)
}

func TestWriteRuns(t *testing.T) {
	runs := []models.Run{
		{ID: "0123456789abcdef", CreatedAt: time.Date(2020, 3, 1, 12, 30, 0, 0, time.UTC), Source: "cli", Files: 3},
	}
	var b strings.Builder
	writeRuns(&b, runs)

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "DATE", "SOURCE", "FILES"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"01234567", "2020-03-01", "12:30", "cli", "3"}, strings.Fields(lines[1]))
}
