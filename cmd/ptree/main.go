package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/output"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/proc"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/session"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/tui"
)

var version = "dev"
var commit = ""
var buildDate = ""

func printHelp() {
	fmt.Println("Usage: ptree [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help          Show this help message")
	fmt.Println("  -r, --resources     Show CPU and memory usage")
	fmt.Println("  -v, --verbose       Show verbose process information")
	fmt.Println("  -p, --pid <PID>     Show only the specified process and its children")
	fmt.Println("  -s, --search <NAME> Search for processes by name or pid")
	fmt.Println("  -o, --output <FILE> Export the process tree to a file")
	fmt.Println("  --format <FMT>      Output format: text, json, yaml, csv (default text)")
	fmt.Println("  --stats             Display process statistics")
	fmt.Println("  --no-color          Disable colorized output")
	fmt.Println("  -i, --interactive   Interactive browser over one snapshot")
	fmt.Println("  --version           Show version and exit")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ptree                # Display full process tree")
	fmt.Println("  ptree -r             # Show with resource usage")
	fmt.Println("  ptree -p 1234        # Show specific process subtree")
	fmt.Println("  ptree -o tree.txt    # Export to file")
}

// flagNeedsValue reports which flags consume the next argument.
func flagNeedsValue(flag string) bool {
	switch flag {
	case "--pid", "-pid", "-p", "--search", "-search", "-s",
		"--output", "-output", "-o", "--format", "-format":
		return true
	}
	return false
}

// reorderArgs moves flags (with their values) ahead of positionals so the
// stdlib flag package accepts "ptree -r -p 42" and "ptree -p 42 -r" alike.
func reorderArgs(args []string) []string {
	reordered := []string{args[0]}
	var positionals []string
	i := 1
	for i < len(args) {
		arg := args[i]
		if len(arg) > 0 && arg[0] == '-' {
			reordered = append(reordered, arg)
			if flagNeedsValue(arg) && i+1 < len(args) && (len(args[i+1]) == 0 || args[i+1][0] != '-') {
				reordered = append(reordered, args[i+1])
				i++
			}
		} else {
			positionals = append(positionals, arg)
		}
		i++
	}
	return append(reordered, positionals...)
}

func main() {
	os.Args = reorderArgs(os.Args)

	helpFlag := flag.Bool("help", false, "show help")
	helpShort := flag.Bool("h", false, "show help")
	resourcesFlag := flag.Bool("resources", false, "show CPU and memory usage")
	resourcesShort := flag.Bool("r", false, "show CPU and memory usage")
	verboseFlag := flag.Bool("verbose", false, "verbose process information")
	verboseShort := flag.Bool("v", false, "verbose process information")
	pidFlag := flag.String("pid", "", "pid whose subtree to show")
	pidShort := flag.String("p", "", "pid whose subtree to show")
	searchFlag := flag.String("search", "", "search processes by name or pid")
	searchShort := flag.String("s", "", "search processes by name or pid")
	outputFlag := flag.String("output", "", "export file path")
	outputShort := flag.String("o", "", "export file path")
	formatFlag := flag.String("format", "text", "output format: text, json, yaml, csv")
	statsFlag := flag.Bool("stats", false, "display process statistics")
	noColorFlag := flag.Bool("no-color", false, "disable colorized output")
	interactiveFlag := flag.Bool("interactive", false, "interactive mode")
	interactiveShort := flag.Bool("i", false, "interactive mode")
	versionFlag := flag.Bool("version", false, "show version and exit")

	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag || *helpShort {
		printHelp()
		os.Exit(0)
	}
	if *versionFlag {
		if commit != "" {
			fmt.Printf("ptree %s (commit %s, built %s)\n", version, commit, buildDate)
		} else {
			fmt.Printf("ptree %s\n", version)
		}
		os.Exit(0)
	}
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Unknown argument: %s\n\n", flag.Args()[0])
		printHelp()
		os.Exit(1)
	}

	pidArg := firstNonEmpty(*pidFlag, *pidShort)
	targetPid := -1
	if pidArg != "" {
		n, err := parsePid(pidArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --pid value %q\n", pidArg)
			os.Exit(1)
		}
		targetPid = n
	}

	format := output.Format(*formatFlag)
	if format.IsUnknown() {
		fmt.Fprintf(os.Stderr, "Unknown format %q (want text, json, yaml or csv)\n", *formatFlag)
		os.Exit(1)
	}

	opts := output.Options{
		Resources: *resourcesFlag || *resourcesShort,
		Verbose:   *verboseFlag || *verboseShort,
		Color:     !*noColorFlag,
	}

	sess := session.New(proc.System())

	fmt.Fprintln(os.Stderr, "Collecting process information...")
	if err := sess.Collect(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	meta := sess.Meta()
	fmt.Fprintf(os.Stderr, "Collected %d processes\n", meta.TotalProcesses)
	if meta.CollectionErrors > 0 {
		fmt.Fprintf(os.Stderr, "(%d processes inaccessible)\n", meta.CollectionErrors)
	}

	if *interactiveFlag || *interactiveShort {
		if err := tui.Run(sess); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	search := firstNonEmpty(*searchFlag, *searchShort)

	switch {
	case format != output.FormatText:
		// Structured formats carry the whole snapshot; subtree and search
		// narrowing apply to the text view only.
		if err := output.WriteSnapshot(os.Stdout, format, sess.Forest(), meta, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case search != "":
		output.RenderHeader(os.Stdout, meta, opts.Color)
		matches := sess.Search(search)
		if len(matches) == 0 {
			p := output.NewPrinter(os.Stdout)
			p.Printf("No processes found matching %q\n", search)
			break
		}
		fmt.Printf("Found %d matching process(es):\n\n", len(matches))
		for _, pid := range matches {
			if err := sess.RenderSubtree(os.Stdout, pid, opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			fmt.Println()
		}
	case targetPid >= 0:
		output.RenderHeader(os.Stdout, meta, opts.Color)
		if err := sess.RenderSubtree(os.Stdout, targetPid, opts); err != nil {
			if errors.Is(err, session.ErrPIDNotFound) {
				fmt.Printf("Process with PID %d not found\n", targetPid)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	default:
		sess.RenderTo(os.Stdout, opts)
	}

	if *statsFlag {
		output.RenderStats(os.Stdout, sess.Stats(), opts.Color)
	}

	if file := firstNonEmpty(*outputFlag, *outputShort); file != "" {
		if err := sess.ExportFile(file, format, opts); err != nil {
			// Terminal output above already succeeded; report and move on.
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Process tree exported to %s\n", file)
		}
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func parsePid(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative pid")
	}
	return n, nil
}
