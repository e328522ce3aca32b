package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilroybot/kilroyws/kilroyretry"
	"github.com/kilroybot/kilroyws/protocol/operation"
	"github.com/kilroybot/kilroyws/protocol/receiver"
	"github.com/kilroybot/kilroyws/protocol/sender"
	"github.com/kilroybot/kilroyws/wsconn"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Subscribe, redialing with backoff across transient connection failures",
	Long: `watch subscribes to a path and prints every payload the server
streams, like subscribe does, but on a transient connection failure
(connection refused, reset, timeout, ...) it redials with exponential
backoff and starts a fresh subscription instead of exiting. Use plain
subscribe if you want one attempt only.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	url := joinPath(baseURL, path)
	dialer := kilroyretry.Wrap(wsconn.Dialer(), kilroyretry.DefaultPolicy)

	for {
		results, _, err := operation.CallStream(ctx, dialer, url, sender.Null{}, receiver.Stream{})
		if err != nil {
			if kilroyretry.IsRetryable(err) {
				continue
			}
			return err
		}

		var streamErr error
		for res := range results {
			if res.Err != nil {
				streamErr = res.Err
				break
			}
			fmt.Fprintln(os.Stdout, string(res.Value))
		}

		if streamErr != nil && !kilroyretry.IsRetryable(streamErr) {
			return streamErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// joinPath mirrors kilroyws's unexported joinURL: trim base's trailing
// slash, ensure path has a leading one, concatenate.
func joinPath(base, p string) string {
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}
