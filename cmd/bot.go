package cmd

import (
	"github.com/ArnaudCalmettes/graybench/bot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var token string

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Discord bot.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if token != "" {
			viper.Set("bot.token", token)
		}
		return bot.Run()
	},
}

func init() {
	rootCmd.AddCommand(botCmd)

	botCmd.Flags().StringVarP(&token, "token", "t", "", "discord token")
	botCmd.Flags().String("prefix", "", "command prefix (default \""+bot.DefaultPrefix+"\")")
	viper.BindPFlag("bot.prefix", botCmd.Flags().Lookup("prefix"))
}
