package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qasmc/codegen"
	"qasmc/report"
)

// Version is the tool version reported by `qasmc version`.
const Version = "0.1.0"

var (
	flagProfile string
	flagVerbose bool
	flagOutput  string
)

// Execute is the entry point of the qasmc command-line tool.
func Execute() {
	root := &cobra.Command{
		Use:           "qasmc",
		Short:         "qasmc compiles OpenQASM programs to a quantum target language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "path to a TOML build profile")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	buildCmd := &cobra.Command{
		Use:   "build <file>",
		Short: "compile a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runBuild(args[0])
		},
	}
	buildCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path; defaults to stdout")

	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "parse and analyze a source file without generating code",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the qasmc version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("qasmc", Version)
		},
	}

	root.AddCommand(buildCmd, checkCmd, versionCmd)

	if err := root.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// newDriver assembles a driver from the command-line state.
func newDriver() (*Driver, error) {
	cfg := codegen.Config{}
	if flagProfile != "" {
		profile, err := LoadProfile(flagProfile)
		if err != nil {
			return nil, err
		}

		if cfg, err = profile.Config(); err != nil {
			return nil, err
		}
	}

	var log *zap.Logger
	if flagVerbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}

	return &Driver{Parse: DefaultParse, Config: cfg, Log: log}, nil
}

func runBuild(path string) error {
	driver, err := newDriver()
	if err != nil {
		return err
	}

	res, err := driver.Compile(path)
	if err != nil {
		return err
	}

	if res.Bag.HasErrors() {
		report.Display(res.Bag, res.Sources)
		os.Exit(1)
	}

	out := res.Package.String()
	if flagOutput == "" {
		fmt.Print(out)
		return nil
	}

	if err := os.WriteFile(flagOutput, []byte(out), 0o644); err != nil {
		return err
	}

	pterm.Success.Println("wrote", flagOutput)
	if res.Signature != nil {
		pterm.Info.Println("entry:", res.Signature.String())
	}

	return nil
}

func runCheck(path string) error {
	driver, err := newDriver()
	if err != nil {
		return err
	}

	res, err := driver.Check(path)
	if err != nil {
		return err
	}

	if len(res.Bag.Diagnostics()) > 0 {
		report.Display(res.Bag, res.Sources)
	}

	if res.Bag.HasErrors() {
		os.Exit(1)
	}

	pterm.Success.Println(path, "ok")
	return nil
}
