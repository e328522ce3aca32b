package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilroybot/kilroyws"
	"github.com/kilroybot/kilroyws/protocol/sender"
)

var requestStreamInOutCmd = &cobra.Command{
	Use:   "request-stream-in-out",
	Short: "Send one payload per stdin line, print every reply until the server ends the stream",
	RunE:  runRequestStreamInOut,
}

func init() {
	rootCmd.AddCommand(requestStreamInOutCmd)
}

func runRequestStreamInOut(cmd *cobra.Command, args []string) error {
	items, err := readPayloadLines()
	if err != nil {
		return err
	}

	client, err := kilroyws.NewClient(baseURL)
	if err != nil {
		return err
	}

	results, closer, err := client.RequestStreamInOut(cmd.Context(), path, sender.NewSliceSource(items))
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
