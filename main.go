// namecheck scores how well function and class names match their
// implementation bodies, using tree-sitter to inspect the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/discover"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/lang"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/report"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/score"
)

var version = "dev"

// defaultPath keeps the historical single-file workflow: with no argument
// the tool analyzes all_func.py in the current directory.
const defaultPath = "all_func.py"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("namecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		detailed    bool
		save        bool
		outDir      string
		langs       string
		worst       int
		rulesetPath string
		showVersion bool
	)

	fs.BoolVar(&detailed, "d", false, "print reasons and suggestions for every definition")
	fs.BoolVar(&detailed, "detailed", false, "print reasons and suggestions for every definition")
	fs.BoolVar(&save, "s", false, "save each report as <base>_analysis.json")
	fs.BoolVar(&save, "save", false, "save each report as <base>_analysis.json")
	fs.StringVar(&outDir, "o", ".", "directory for saved reports")
	fs.StringVar(&langs, "l", "", "comma-separated languages to include (directory mode)")
	fs.StringVar(&langs, "langs", "", "comma-separated languages to include (directory mode)")
	fs.IntVar(&worst, "worst", 0, "keep only the N lowest-scoring definitions per report")
	fs.StringVar(&rulesetPath, "ruleset", "", "YAML ruleset override")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "namecheck %s\n", version)
		return nil
	}

	rules := score.Default()
	if rulesetPath != "" {
		var err error
		rules, err = score.Load(rulesetPath)
		if err != nil {
			return err
		}
	}

	path := defaultPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	info, err := os.Stat(path)
	if err != nil {
		return &model.InputError{Path: path, Err: err}
	}

	var langFilter []string
	if langs != "" {
		for _, name := range strings.Split(langs, ",") {
			name = strings.TrimSpace(name)
			if _, ok := lang.Languages[name]; !ok {
				return fmt.Errorf("unsupported language %q", name)
			}
			langFilter = append(langFilter, name)
		}
	}

	assembler := report.New(rules)

	if !info.IsDir() {
		langName := lang.ForExtension(filepath.Ext(path))
		if langName == "" {
			return &model.InputError{Path: path, Err: errors.New("unsupported file type")}
		}
		return analyzeOne(assembler, path, langName, stdout, stderr, options{
			detailed: detailed, save: save, outDir: outDir, worst: worst,
		})
	}

	files, err := discover.Files(path, langFilter)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no analyzable files found under %s", path)
	}

	for i, f := range files {
		if i > 0 {
			_, _ = fmt.Fprintln(stdout)
		}
		err := analyzeOne(assembler, filepath.Join(path, f.Path), f.Language, stdout, stderr, options{
			detailed: detailed, save: save, outDir: outDir, worst: worst,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type options struct {
	detailed bool
	save     bool
	outDir   string
	worst    int
}

// analyzeOne runs the full pipeline for a single source file. Syntax errors
// abort before anything is written; persistence failures are downgraded to a
// warning since the console output is already complete.
func analyzeOne(a *report.Assembler, path, langName string, stdout, stderr io.Writer, opts options) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	rep, err := a.Analyze(path, source, lang.Languages[langName])
	if err != nil {
		return err
	}

	rep = report.SelectWorst(rep, opts.worst)
	report.Render(stdout, rep, a.Rules.Threshold, opts.detailed)

	if opts.save {
		savePath := report.SavePath(opts.outDir, path)
		if err := report.Save(rep, savePath); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
			return nil
		}
		_, _ = fmt.Fprintf(stdout, "\nreport saved to %s\n", savePath)
	}
	return nil
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-o": true, "--o": true,
	"-l": true, "--l": true,
	"-langs": true, "--langs": true,
	"-worst": true, "--worst": true,
	"-ruleset": true, "--ruleset": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
