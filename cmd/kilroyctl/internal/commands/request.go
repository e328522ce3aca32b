package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilroybot/kilroyws"
	"github.com/kilroybot/kilroyws/protocol/frame"
)

var payloadFlag string

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Send one payload, print the one reply",
	RunE:  runRequest,
}

func init() {
	rootCmd.AddCommand(requestCmd)
	requestCmd.Flags().StringVar(&payloadFlag, "payload", "null", "JSON payload to send")
}

func runRequest(cmd *cobra.Command, args []string) error {
	client, err := kilroyws.NewClient(baseURL)
	if err != nil {
		return err
	}

	reply, err := client.Request(cmd.Context(), path, frame.JSON(payloadFlag))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(reply))
	return nil
}
