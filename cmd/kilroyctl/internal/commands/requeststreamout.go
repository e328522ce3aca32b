package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilroybot/kilroyws"
	"github.com/kilroybot/kilroyws/protocol/frame"
)

var requestStreamOutCmd = &cobra.Command{
	Use:   "request-stream-out",
	Short: "Send one payload, print every reply until the server ends the stream",
	RunE:  runRequestStreamOut,
}

func init() {
	rootCmd.AddCommand(requestStreamOutCmd)
	requestStreamOutCmd.Flags().StringVar(&payloadFlag, "payload", "null", "JSON payload to send")
}

func runRequestStreamOut(cmd *cobra.Command, args []string) error {
	client, err := kilroyws.NewClient(baseURL)
	if err != nil {
		return err
	}

	results, closer, err := client.RequestStreamOut(cmd.Context(), path, frame.JSON(payloadFlag))
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
