package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilroybot/kilroyws"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Send nothing, print the one payload the server sends back",
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := kilroyws.NewClient(baseURL)
	if err != nil {
		return err
	}

	payload, err := client.Get(cmd.Context(), path)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}
