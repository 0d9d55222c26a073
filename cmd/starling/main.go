// Command starling drives the pipeline end-to-end from the terminal:
// argument parsing, config resolution, and a Model/Graph summary or a
// pretty-printed dump of the stage reached.
package main

import (
	"fmt"
	"os"

	"github.com/BenSimner/starling-tool/internal/config"
	"github.com/BenSimner/starling-tool/internal/debugdump"
	"github.com/BenSimner/starling-tool/internal/driver"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/ComedicChimera/olive"
)

func main() {
	cli := olive.NewCLI("starling", "starling compiles concurrent proof sources into verification-ready models", true)
	cli.AddStringArg("dir", "C", "the project root to look up starling.toml in", false)
	cli.AddFlag("verbose", "v", "raise diagnostic verbosity to verbose")
	cli.AddFlag("quiet", "q", "lower diagnostic verbosity to errors only")
	cli.AddStringArg("output", "o", "dump the reached stage's value; pass - for stdout", false)

	for _, name := range []string{"parse", "collate", "model", "guard", "graph"} {
		sub := cli.AddSubcommand(name, "run the pipeline up to "+name, true)
		sub.AddPrimaryArg("source", "the source file to compile", true)
	}
	checkCmd := cli.AddSubcommand("check", "alias for graph, the deepest stage", true)
	checkCmd.AddPrimaryArg("source", "the source file to compile", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	subcmdName, subResult, ok := result.Subcommand()
	if !ok {
		fmt.Fprintln(os.Stderr, "starling: no subcommand given; run one of parse/collate/model/guard/graph/check")
		os.Exit(1)
	}

	targetName := subcmdName
	if targetName == "check" {
		targetName = "graph"
	}
	target, ok := driver.ParseTarget(targetName)
	if !ok {
		fmt.Fprintf(os.Stderr, "starling: unrecognized stage %q\n", targetName)
		os.Exit(1)
	}

	rootDir := "."
	if v, ok := result.Arguments["dir"]; ok && v != nil {
		rootDir = v.(string)
	}
	proj, err := config.Load(rootDir)
	if err != nil {
		proj = config.Default(rootDir)
	}

	level := verbosityLevel(proj.Verbosity)
	if _, ok := result.Arguments["verbose"]; ok {
		level = report.LogLevelVerbose
	}
	if _, ok := result.Arguments["quiet"]; ok {
		level = report.LogLevelError
	}
	reporter := report.NewReporter(level)

	sourcePath, _ := subResult.PrimaryArg()
	f, err := os.Open(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starling: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	res, bag, runErr := driver.Run(target, f)
	if bag != nil {
		reporter.Print(bag)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "starling: %v\n", runErr)
		os.Exit(1)
	}

	if out, ok := result.Arguments["output"]; ok && out != nil {
		dest := out.(string)
		if dest == "-" {
			debugdump.Dump(os.Stdout, res)
		} else {
			df, err := os.Create(dest)
			if err != nil {
				fmt.Fprintf(os.Stderr, "starling: %v\n", err)
				os.Exit(1)
			}
			defer df.Close()
			debugdump.Dump(df, res)
		}
		return
	}

	fmt.Printf("starling: %s reached %s cleanly\n", sourcePath, target)
}

func verbosityLevel(v string) report.LogLevel {
	switch v {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "verbose":
		return report.LogLevelVerbose
	default:
		return report.LogLevelWarning
	}
}
