package cli

import (
	"fmt"
	"io"
	"os"
)

func Run(args []string) error {
	return run(args, os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "help", "-h", "--help":
			printRootUsage(stdout)
			return nil
		}
	}
	return runFetch(args, stdin, stdout, stderr)
}

func printRootUsage(w io.Writer) {
	fmt.Fprintln(w, "oraj-pole: top player replay downloader")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  oraj-pole [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prompts for a custom mode, a mode and a leaderboard page, then downloads the")
	fmt.Fprintln(w, "top 10 replays of every player on that page into <out-dir>/<player>/<score>.osr.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --out-dir <dir>         output directory (default: out)")
	fmt.Fprintln(w, "  --api-base <url>        server base URL (default: https://ussr.pl)")
	fmt.Fprintln(w, "  --timeout <duration>    per-request timeout, 0 = none (default: 0)")
	fmt.Fprintln(w, "  --rate <n>              max requests per second, 0 = unlimited (default: 0)")
	fmt.Fprintln(w, "  --skip-failed-players   skip players whose best scores cannot be listed")
	fmt.Fprintln(w, "  --plain                 plain line prompts, no progress bars")
	fmt.Fprintln(w, "  --verbose               debug logs on stderr")
}
