package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rill/internal/diag"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Explain a diagnostic code",
	Long:  `Explain a diagnostic code like LFT4312. With no argument, list every published code.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	idColor := color.New(color.Bold)
	if useColor {
		idColor.EnableColor()
	} else {
		idColor.DisableColor()
	}

	if len(args) == 0 {
		for _, c := range diag.Published() {
			fmt.Fprintf(os.Stdout, "%s  %s\n", idColor.Sprint(c.ID()), c.Title())
		}
		return nil
	}

	c, ok := diag.ParseID(args[0])
	if !ok {
		return fmt.Errorf("unknown diagnostic code: %s", args[0])
	}
	fmt.Fprintf(os.Stdout, "%s: %s\n", idColor.Sprint(c.ID()), c.Title())
	return nil
}
