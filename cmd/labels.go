package cmd

import (
	"fmt"

	"github.com/ChainSafe/mips-decoder/renderer"
	"github.com/urfave/cli/v2"
)

func CreateLabelsCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "labels",
		Usage:       "Lists the branch and jump labels of a program",
		Description: "Runs the decoder and prints the label table in address order",
		ArgsUsage:   "FILENAME",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			TextBaseFlag,
			OutputPathFlag,
			VerboseFlag,
		},
	}
}

var LabelsCommand = CreateLabelsCommand(ListLabels)

func ListLabels(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}

	listing, err := decode(ctx, prof)
	if err != nil {
		return err
	}

	if err := writeOutput(listing, renderer.NewLabelRenderer(), ctx.Path(OutputPathFlag.Name)); err != nil {
		return fmt.Errorf("unable to write labels: %w", err)
	}
	return nil
}
