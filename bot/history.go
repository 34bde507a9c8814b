package bot

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ArnaudCalmettes/graybench/models"
	"github.com/ArnaudCalmettes/graybench/report"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"
)

// HistoryLimit is the number of runs listed by the history command.
const HistoryLimit = 10

// Write the list of runs as a table
func writeRuns(b *strings.Builder, runs []models.Run) {
	w := tabwriter.NewWriter(b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSOURCE\tFILES\t")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t\n", r.ShortID(), r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.Files)
	}
	w.Flush()
}

// Delete a recorded run
func removeRun(ctx *exrouter.Context) {
	if len(ctx.Args) != 3 {
		sendUsage(ctx, ctx.Args[1]+" <id>")
		return
	}
	db, err := getDB(ctx)
	if err != nil {
		sendWarning(ctx, err)
		return
	}

	_, err = models.DeleteRun(db, ctx.Args[2])
	if gorm.IsRecordNotFoundError(err) {
		sendError(ctx, errors.New("No such run"))
		return
	} else if err != nil {
		sendError(ctx, err)
		return
	}
	markOk(ctx)
}

// List recorded runs, show one of them, or delete one
func showHistory(ctx *exrouter.Context) {
	if len(ctx.Args) > 1 && (ctx.Args[1] == "rm" || ctx.Args[1] == "remove") {
		removeRun(ctx)
		return
	}
	if len(ctx.Args) > 2 {
		sendUsage(ctx, "[id] | rm <id>")
		return
	}
	db, err := getDB(ctx)
	if err != nil {
		sendWarning(ctx, err)
		return
	}

	var b strings.Builder
	if len(ctx.Args) == 1 {
		runs, err := models.ListRuns(db, HistoryLimit)
		if err != nil {
			internalError(ctx, err)
			return
		}
		if len(runs) == 0 {
			sendInfo(ctx, "No run recorded yet. Use `bench` with some images attached.")
			return
		}
		writeRuns(&b, runs)
		sendBlock(ctx, b.String())
		return
	}

	run, err := models.FindRun(db, ctx.Args[1])
	if gorm.IsRecordNotFoundError(err) {
		sendError(ctx, errors.New("No such run"))
		return
	} else if err != nil {
		sendError(ctx, err)
		return
	}
	fmt.Fprintln(&b, run)
	if err := report.WriteTable(&b, run.Summary()); err != nil {
		internalError(ctx, err)
		return
	}
	sendBlock(ctx, b.String())
}
