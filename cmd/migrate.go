package cmd

import (
	"errors"

	"github.com/ArnaudCalmettes/graybench/models"
	"github.com/jinzhu/gorm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNoDB = errors.New("no database configured (see --db)")

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Perform automatic database migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		return db.Close()
	},
}

// openDB opens and migrates the history database.
func openDB() (*gorm.DB, error) {
	path := viper.GetString("db")
	if path == "" {
		return nil, errNoDB
	}
	db, err := models.Open(path)
	if err != nil {
		return nil, err
	}
	if err := models.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
