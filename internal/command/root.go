package command

import (
	"fmt"
	"github.com/cirruslabs/rawmv/internal/mover"
	"github.com/cirruslabs/rawmv/internal/plan"
	"github.com/cirruslabs/rawmv/internal/version"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"log"
)

var noReplace bool
var exchange bool
var whiteout bool
var verbose bool
var dryRun bool
var noTargetDirectory bool
var targetDirectory string

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rawmv [flags] SOURCE... DESTINATION",
		Short:         "mv(1) without the cp(1) fallback: a thin wrapper of renameat2(2)",
		RunE:          runMove,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.FullVersion,
	}

	cmd.Flags().BoolVar(&noReplace, "no-replace", false,
		"fail instead of overwriting an existing destination")
	cmd.Flags().BoolVar(&exchange, "exchange", false,
		"atomically swap source and destination (both must exist)")
	cmd.Flags().BoolVar(&whiteout, "whiteout", false,
		"leave a whiteout marker in place of the source (overlayfs semantics)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"print what is being done")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"print the operations that would be performed, without performing them")
	cmd.Flags().BoolVarP(&noTargetDirectory, "no-target-directory", "T", false,
		"always treat the destination as a normal file")
	cmd.Flags().StringVarP(&targetDirectory, "target-directory", "t", "",
		"move all sources into this directory")

	cmd.MarkFlagsMutuallyExclusive("target-directory", "no-target-directory")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	sources := args
	destination := targetDirectory

	if targetDirectory == "" {
		if len(args) < 2 {
			return plan.ErrNoDestination
		}

		sources = args[:len(args)-1]
		destination = args[len(args)-1]
	}

	builder := plan.Builder{
		Flags: plan.Flags{
			NoReplace: noReplace,
			Exchange:  exchange,
			Whiteout:  whiteout,
		},
		IntoDirectory:    targetDirectory != "",
		ExactDestination: noTargetDirectory,
	}

	ops, err := builder.Build(sources, destination)
	if err != nil {
		return err
	}

	if dryRun {
		table := uitable.New()

		table.AddRow("Source", "Destination", "Flags")

		for _, op := range ops {
			table.AddRow(op.Source, op.Destination, op.Flags.String())
		}

		fmt.Println(table.String())

		return nil
	}

	move := &mover.Mover{}

	if verbose {
		move.Applied = func(op plan.Operation) {
			log.Printf("renamed %q -> %q", op.Source, op.Destination)
		}
	}

	return move.Move(ops)
}
