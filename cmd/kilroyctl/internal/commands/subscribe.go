package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilroybot/kilroyws"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Send nothing, print every payload the server streams until it ends the stream",
	RunE:  runSubscribe,
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	client, err := kilroyws.NewClient(baseURL)
	if err != nil {
		return err
	}

	results, closer, err := client.Subscribe(cmd.Context(), path)
	if err != nil {
		return err
	}
	defer closer.Close()

	for res := range results {
		if res.Err != nil {
			return res.Err
		}
		fmt.Fprintln(os.Stdout, string(res.Value))
	}
	return nil
}
