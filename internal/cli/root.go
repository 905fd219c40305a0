package cli

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "support-chat",
		Short: "Console client for the support assistant",
	}

	root.AddCommand(newChatCommand())
	root.AddCommand(newEventsCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
