// Command amazegen generates a maze from a parameter file, prints it,
// and saves the result alongside its first solution.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/amazeing/maze-api/config"
	"github.com/amazeing/maze-api/infrastruture/mazefile"
	"github.com/amazeing/maze-api/logger"
	"github.com/amazeing/maze-api/mazegen"
)

func main() {
	animate := flag.Bool("animate", false, "render each construction step")
	delay := flag.Duration("delay", 40*time.Millisecond, "frame delay when animating")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <config-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	appLogger, err := logger.New("AMAZEGEN", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadMazeFile(flag.Arg(0))
	if err != nil {
		appLogger.Error(err.Error())
		os.Exit(1)
	}

	gen, err := mazegen.NewGenerator(cfg.GeneratorConfig())
	if err != nil {
		appLogger.Error(err.Error())
		os.Exit(1)
	}
	if diag := gen.PatternDiagnostic(); diag != nil {
		appLogger.Warning(diag.Error())
	}

	if *animate {
		for gen.Step() != mazegen.Done {
			fmt.Print("\033[H\033[2J")
			fmt.Println(gen.Maze().PrettyString())
			time.Sleep(*delay)
		}
	} else {
		gen.Generate()
	}

	m := gen.Maze()
	fmt.Println(m.PrettyString())
	fmt.Println(m.String())

	var solution string
	if paths := mazegen.NewSolver(m).Solve(1); len(paths) > 0 {
		solution = paths[0]
	} else {
		appLogger.Warning("no route from entry to exit")
	}

	if err := mazefile.Save(cfg.OutputFile, m, solution); err != nil {
		appLogger.Error(err.Error())
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Generated %dx%d maze, saved to %s", cfg.Width, cfg.Height, cfg.OutputFile))
}
