package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilroybot/kilroyws"
	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/protocol/sender"
)

var requestStreamInCmd = &cobra.Command{
	Use:   "request-stream-in",
	Short: "Send one payload per stdin line, print the one reply",
	RunE:  runRequestStreamIn,
}

func init() {
	rootCmd.AddCommand(requestStreamInCmd)
}

func readPayloadLines() ([]frame.JSON, error) {
	var items []frame.JSON
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		items = append(items, frame.JSON(line))
	}
	return items, scanner.Err()
}

func runRequestStreamIn(cmd *cobra.Command, args []string) error {
	items, err := readPayloadLines()
	if err != nil {
		return err
	}

	client, err := kilroyws.NewClient(baseURL)
	if err != nil {
		return err
	}

	reply, err := client.RequestStreamIn(cmd.Context(), path, sender.NewSliceSource(items))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(reply))
	return nil
}
