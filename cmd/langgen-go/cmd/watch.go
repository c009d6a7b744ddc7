package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"langgen-go/packages/generator/src/builder"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]...",
	Short: "Watch directories and regenerate on input changes",
	Long: `Watches the given directories (default: the working directory) and
runs a generation pass whenever a matching input asset is created or
written. Each change triggers one full, independent pass.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		slog.Info("watching", "dir", dir)

		// run an initial pass for assets already present
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if !entry.IsDir() && builder.Matches(entry.Name()) {
				_ = runPass(cmd, b, filepath.Join(dir, entry.Name()))
			}
		}
	}

	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !builder.Matches(event.Name) {
				continue
			}
			_ = runPass(cmd, b, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}
