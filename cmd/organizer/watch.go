package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dunamismax/go-cli/organizer"
)

func buildWatchCommand() *cobra.Command {
	var (
		by        string
		format    string
		rangeSpec string
	)

	cmd := &cobra.Command{
		Use:   "watch <source>",
		Short: "Organize new files as they appear",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrganizer(args[0])
			if err != nil {
				return err
			}

			var bucket organizer.Bucketer
			switch by {
			case "type":
				bucket = organizer.ByType(o.Classifier)
			case "date":
				bucket = organizer.ByDate(format)
			case "size":
				ranges, err := parseRangeFlag(rangeSpec)
				if err != nil {
					return err
				}
				bucket, err = organizer.BySize(ranges)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown strategy %q: use type, date or size", by)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s, press Ctrl-C to stop\n", args[0])
			if err := o.Watch(ctx, bucket); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "type", "Bucketing strategy: type, date or size")
	cmd.Flags().StringVar(&format, "format", organizer.DefaultDateLayout,
		"Folder name layout for --by date")
	cmd.Flags().StringVar(&rangeSpec, "ranges", "", "Size ranges for --by size")

	return cmd
}
