package main

import (
	"os"

	"github.com/ComedicChimera/olive"

	"vex/internal/common"
	"vex/internal/report"
)

// Execute is the entry point for the vexc CLI.
func Execute() {
	cli := olive.NewCLI("vexc", "vexc checks vex source files and modules", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the checker's log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "run the semantic checker over a file or module", true)
	checkCmd.AddPrimaryArg("path", "a .vex source file or a directory containing vex-mod.toml", true)

	cli.AddSubcommand("version", "print the vexc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
		return
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		report.InitReporter(logLevelFromArg(result.Arguments["loglevel"].(string)))
		path, _ := subResult.PrimaryArg()
		ok := execCheckCommand(path)
		if !ok {
			os.Exit(1)
		}
	case "version":
		println("vexc " + common.VexVersion)
	}
}

func logLevelFromArg(name string) int {
	switch name {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}
