package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ArnaudCalmettes/graybench/bench"
	"github.com/ArnaudCalmettes/graybench/imp"
	"github.com/ArnaudCalmettes/graybench/models"
	"github.com/ArnaudCalmettes/graybench/report"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// MaxAttachmentSize is the largest attachment the bot downloads.
const MaxAttachmentSize = 8 << 20

// Only one benchmark may run at a time: the memory tracer is process-wide.
var benchMu sync.Mutex

// Download and decode an image of at most limit bytes
func fetchImage(client *http.Client, url string, limit int64) (*imp.RGB, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("larger than %d bytes", limit)
	}

	img, err := imp.ReadBytes(data)
	if err != nil {
		return nil, err
	}
	return imp.FromImage(img), nil
}

// Benchmark every attachment. Attachments that can't be fetched are reported
// as warnings and skipped; a converter mismatch aborts the whole run.
func benchAttachments(ctx context.Context, client *http.Client, runner *bench.Runner, atts []*discordgo.MessageAttachment) (s *bench.Summary, warnings []string, err error) {
	s = &bench.Summary{
		Started:    time.Now(),
		Converters: runner.Names(),
	}
	defer func() {
		s.Elapsed = time.Since(s.Started)
	}()

	benchMu.Lock()
	defer benchMu.Unlock()

	for _, att := range atts {
		if att.Size > MaxAttachmentSize {
			warnings = append(warnings, fmt.Sprintf("Skipping %s: too large (%d bytes)", att.Filename, att.Size))
			continue
		}

		log.Println("Downloading attachment", att.URL)
		img, err := fetchImage(client, att.URL, MaxAttachmentSize)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Couldn't open <%s>: `%s`", att.URL, err))
			continue
		}

		res, _, err := runner.RunImage(ctx, att.Filename, img)
		var mismatch *bench.MismatchError
		if errors.As(err, &mismatch) {
			return s, warnings, err
		} else if err != nil {
			warnings = append(warnings, fmt.Sprintf("While benchmarking %s: `%s`", att.Filename, err))
			continue
		}
		s.Files = append(s.Files, res)
	}
	return s, warnings, nil
}

func newRunner() (*bench.Runner, error) {
	convs, err := imp.Select(viper.GetStringSlice("only"))
	if err != nil {
		return nil, err
	}
	cfg := bench.DefaultConfig()
	if repeat := viper.GetInt("repeat"); repeat > 0 {
		cfg.Repeat = repeat
	}
	return bench.NewRunner(cfg, convs, nil), nil
}

// Benchmark attached images and reply with the results
func benchImages(ctx *exrouter.Context) {
	if len(ctx.Msg.Attachments) == 0 {
		sendUsage(ctx, "(attach one or more images)")
		return
	}

	runner, err := newRunner()
	if err != nil {
		internalError(ctx, err)
		return
	}

	s, warnings, err := benchAttachments(context.Background(), http.DefaultClient, runner, ctx.Msg.Attachments)
	for _, w := range warnings {
		sendWarning(ctx, w)
	}
	if err != nil {
		sendError(ctx, err)
		markPoop(ctx)
		return
	}
	if len(s.Files) == 0 {
		markPoop(ctx)
		return
	}

	var b strings.Builder
	if err := report.WriteTable(&b, s); err != nil {
		internalError(ctx, err)
		return
	}
	sendBlock(ctx, b.String())

	if db, err := getDB(ctx); err == nil {
		run := models.NewRunFromSummary("discord", s)
		if err := run.Create(db); err != nil {
			internalError(ctx, err)
			return
		}
		sendInfo(ctx, "Recorded run ", run.ShortID())
	}
	markOk(ctx)
}
