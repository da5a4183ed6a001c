package main

import (
	"github.com/spf13/cobra"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/organizer"
)

func buildByTypeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "by-type <source>",
		Short: "Group files into category folders (images, documents, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrganizer(args[0])
			if err != nil {
				return err
			}
			report, err := o.OrganizeByType()
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
}

func buildByDateCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "by-date <source>",
		Short: "Group files into folders named after their modification date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrganizer(args[0])
			if err != nil {
				return err
			}
			report, err := o.OrganizeByDate(format)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", organizer.DefaultDateLayout,
		"Folder name layout in Go time format (2006 = year, 01 = month, 02 = day)")

	return cmd
}

func buildBySizeCommand() *cobra.Command {
	var rangeSpec string

	cmd := &cobra.Command{
		Use:   "by-size <source>",
		Short: "Group files into folders by size range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrganizer(args[0])
			if err != nil {
				return err
			}
			ranges, err := parseRangeFlag(rangeSpec)
			if err != nil {
				return err
			}
			report, err := o.OrganizeBySize(ranges)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeSpec, "ranges", "",
		`Size ranges as "min:max:label" entries separated by commas, max "inf" for unbounded (default: small, medium, large, huge)`)

	return cmd
}

func parseRangeFlag(spec string) ([]models.SizeRange, error) {
	if spec == "" {
		return nil, nil
	}
	return organizer.ParseSizeRanges(spec)
}
