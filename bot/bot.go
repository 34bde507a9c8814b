package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ArnaudCalmettes/graybench/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"
)

// DefaultPrefix precedes every command unless bot.prefix says otherwise.
const DefaultPrefix = "."

func newRouter(db *gorm.DB) *exrouter.Route {
	router := exrouter.New()

	router.Group(func(r *exrouter.Route) {
		r.Use(logMiddleware)
		r.Use(dbMiddleware(db))
		r.On("bench", benchImages).Desc("benchmark the attached images (alias: b)").Alias("b")
		r.On("history", showHistory).Desc("list recorded runs, show one given its id, or delete one (rm <id>)")
	})

	router.Default = router.On("help", func(ctx *exrouter.Context) {
		var f func(depth int, r *exrouter.Route) string
		f = func(depth int, r *exrouter.Route) string {
			text := ""
			for _, v := range r.Routes {
				text += strings.Repeat("  ", depth) + v.Name + ": " + v.Description + "\n"
				text += f(depth+1, &exrouter.Route{Route: v})
			}
			return text
		}
		ctx.Reply("```" + f(0, router) + "```")
	}).Desc("print this help menu (aliases: [h])").Alias("h")

	return router
}

// Run runs the bot until it is interrupted.
func Run() error {
	dg, err := discordgo.New("Bot " + viper.GetString("bot.token"))
	if err != nil {
		return fmt.Errorf("couldn't create Discord session: %w", err)
	}

	var db *gorm.DB
	if path := viper.GetString("db"); path != "" {
		db, err = models.Open(path)
		if err != nil {
			return fmt.Errorf("couldn't connect to db: %w", err)
		}
		defer db.Close()
		if err := models.Migrate(db); err != nil {
			return err
		}
	} else {
		log.Println("No database configured, runs won't be recorded")
	}

	prefix := viper.GetString("bot.prefix")
	if prefix == "" {
		prefix = DefaultPrefix
	}

	router := newRouter(db)
	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.ID == s.State.User.ID {
			return
		}
		router.FindAndExecute(s, prefix, s.State.User.ID, m.Message)
	})

	if err := dg.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	fmt.Println("Up & running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	return dg.Close()
}
