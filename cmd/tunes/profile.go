package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createProfileCommand создает команду profile с привязкой к экземпляру приложения
func (app *Application) createProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the music folder saved in the profile",
		Long:  `Print the last music folder chosen in the player, as stored in the profile file.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			store := app.profileStore()
			out := cmd.OutOrStdout()

			dir, ok := store.Load()
			if !ok {
				fmt.Fprintf(out, "Папка еще не выбрана (профиль: %s)\n", store.Path())
				return
			}
			fmt.Fprintln(out, dir)
		},
	}
}
