package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			count, bytes, err := clearCacheDir(dir)
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries (%s reclaimed)", count, formatBytes(bytes))
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// clearCacheDir removes every cache entry under dir and prunes the shard
// subdirectories, reporting how many entries and bytes were removed. A
// missing directory clears nothing.
func clearCacheDir(dir string) (count int, bytes int64, err error) {
	var shards []string

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || path == dir {
			// A missing or unreadable entry (including the root itself)
			// just means there is nothing there to clear.
			return nil
		}
		if d.IsDir() {
			shards = append(shards, path)
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		if rmErr := os.Remove(path); rmErr != nil {
			return nil
		}
		count++
		bytes += info.Size()
		return nil
	})
	if err != nil {
		return count, bytes, err
	}

	// Emptied shards go too, deepest first.
	for i := len(shards) - 1; i >= 0; i-- {
		_ = os.Remove(shards[i])
	}
	return count, bytes, nil
}

// formatBytes renders a byte count in a human-friendly unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
