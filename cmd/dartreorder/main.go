package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	logger "github.com/metal3d/dartreorder/log"
	"github.com/metal3d/dartreorder/ordering"
	"github.com/muesli/termenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	usage = `%[1]s reorders the members of the classes in Dart source files:
constructors, variables, getters, methods and the build method. By default, it
will print the result to stdout. To allow %[1]s to write to the file, use the
--write flag.`
)

var (
	version  = "master" // changed at compilation time
	log      = logger.GetLogger()
	examples = []string{
		"$ %[1]s reorder --write lib/widget.dart",
		"$ %[1]s reorder --diff --color ./lib",
		"$ %[1]s reorder --check --order build-method,public-constructor ./lib",
		"$ cat widget.dart | %[1]s reorder",
		"$ %[1]s features lib/widget.dart",
	}
	completionExamples = []string{
		"$ %[1]s completion bash",
		"$ %[1]s completion bash --no-documentation",
		"$ %[1]s completion zsh",
		"$ %[1]s completion fish",
		"$ %[1]s completion powershell",
	}

	// skipped while walking directories
	skipDirs     = []string{".dart_tool", "build"}
	skipSuffixes = []string{".g.dart", ".freezed.dart"}

	errWouldChange = errors.New("some files are not ordered")
	errParse       = errors.New("some classes could not be parsed")
)

func main() {
	if err := buildMainCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// fileResult is the outcome of one file.
type fileResult struct {
	filename string
	perm     fs.FileMode
	content  string
	output   string
	errors   []*ordering.ParseError
	err      error
}

func (r *fileResult) changed() bool {
	return r.content != r.output
}

func run(cmd *cobra.Command, config *ReorderConfig, args ...string) error {
	if len(args) == 0 && stdinPiped() {
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		config.Write = false
		log.Debug().Msg("Processing stdin, write is set to false")
		result := reorderContent("stdin.dart", input, config)
		return report(cmd.OutOrStdout(), config, []*fileResult{result})
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	results := make([]*fileResult, len(files))
	var group errgroup.Group
	group.SetLimit(config.Jobs)
	for i, filename := range files {
		i, filename := i, filename
		group.Go(func() error {
			results[i] = processFile(filename, config)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), config, results)
}

// collectFiles expands the directories of args into the Dart files they
// contain, in walk order. Files given explicitly are always kept.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		stat, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !stat.IsDir() {
			files = append(files, arg)
			continue
		}
		log.Debug().Str("directory", arg).Msg("Processing directory")
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && skipDir(d.Name()) {
					log.Debug().Str("directory", path).Msg("Skipping directory")
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".dart") {
				return nil
			}
			for _, suffix := range skipSuffixes {
				if strings.HasSuffix(path, suffix) {
					log.Debug().Str("file", path).Msg("Skipping generated file")
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, dir := range skipDirs {
		if name == dir {
			return true
		}
	}
	return false
}

func processFile(filename string, config *ReorderConfig) *fileResult {
	log.Debug().Str("file", filename).Msg("Processing file")
	stat, err := os.Stat(filename)
	if err != nil {
		return &fileResult{filename: filename, err: err}
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return &fileResult{filename: filename, err: err}
	}
	result := reorderContent(filename, content, config)
	result.perm = stat.Mode().Perm()
	return result
}

func reorderContent(filename string, content []byte, config *ReorderConfig) *fileResult {
	cfg := config.orderingConfig()
	src := string(content)
	res := ordering.Process(src, cfg)
	if len(res.Classes) == 0 && len(res.Errors) == 0 {
		log.Debug().Str("file", filename).Msg(ordering.ErrNoClassesFound.Error())
	}
	if config.Verbose {
		for _, class := range res.Classes {
			for _, f := range class.Features {
				if len(f.Lines) == 0 {
					continue
				}
				log.Debug().
					Str("file", filename).
					Str("class", class.Name).
					Int("line", f.Lines[0].Index+1).
					Stringer("type", f.Type).
					Str("name", f.Name).
					Msg("feature")
			}
		}
	}
	return &fileResult{
		filename: filename,
		content:  src,
		output:   ordering.Apply(src, res.Edits),
		errors:   res.Errors,
	}
}

// report prints or writes the results in order and returns the error that
// decides the exit status.
func report(out io.Writer, config *ReorderConfig, results []*fileResult) error {
	var errs []error
	for _, r := range results {
		if r.err != nil {
			log.Error().Err(r.err).Str("file", r.filename).Msg("Cannot process file")
			errs = append(errs, r.err)
			continue
		}
		for _, perr := range r.errors {
			log.Error().
				Str("file", r.filename).
				Int("line", perr.Line).
				Str("class", perr.Class).
				Msg(perr.Kind.Error() + ": " + perr.Msg)
		}
		if len(r.errors) > 0 {
			errs = append(errs, fmt.Errorf("%s: %w", r.filename, errParse))
		}

		switch {
		case config.Check:
			if r.changed() {
				fmt.Fprintln(out, r.filename)
				errs = append(errs, fmt.Errorf("%s: %w", r.filename, errWouldChange))
			}
		case config.MakeDiff:
			diff, err := ordering.UnifiedDiff(r.content, r.output, r.filename)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if config.Color {
				diff = colorDiff(out, diff)
			}
			fmt.Fprint(out, diff)
		case config.Write:
			if !r.changed() {
				continue
			}
			if err := os.WriteFile(r.filename, []byte(r.output), r.perm); err != nil {
				log.Error().Err(err).Str("file", r.filename).Msg("Write to file failed")
				errs = append(errs, err)
				continue
			}
			log.Debug().Str("file", r.filename).Msg("Reordered")
		default:
			fmt.Fprint(out, r.output)
		}
	}
	return errors.Join(errs...)
}

// diffStyles are the styles of the unified diff lines.
type diffStyles struct {
	added, removed, hunk, header lipgloss.Style
}

// newDiffStyles renders to out with ANSI colors whether out is a terminal
// or not: --color is an explicit request.
func newDiffStyles(out io.Writer) diffStyles {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.ANSI)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return diffStyles{
		added:   base.Foreground(lipgloss.Color("2")),
		removed: base.Foreground(lipgloss.Color("1")),
		hunk:    base.Foreground(lipgloss.Color("6")),
		header:  base.Bold(true),
	}
}

// colorDiff colors the lines of a unified diff written to out.
func colorDiff(out io.Writer, diff string) string {
	styles := newDiffStyles(out)
	lines := strings.SplitAfter(diff, "\n")
	var buf strings.Builder
	for _, line := range lines {
		text := strings.TrimSuffix(line, "\n")
		eol := line[len(text):]
		switch {
		case text == "":
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = styles.header.Render(text)
		case strings.HasPrefix(text, "@@"):
			text = styles.hunk.Render(text)
		case strings.HasPrefix(text, "+"):
			text = styles.added.Render(text)
		case strings.HasPrefix(text, "-"):
			text = styles.removed.Render(text)
		}
		buf.WriteString(text)
		buf.WriteString(eol)
	}
	return buf.String()
}

// stdinPiped reports whether content is streamed to stdin.
func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && (stat.Mode()&os.ModeCharDevice) == 0
}

// readInput returns the content of the file given in args, or of stdin.
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		return args[0], content, err
	}
	if !stdinPiped() {
		return "", nil, errors.New("You should provide a file or stream content to stdin.")
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	return "stdin.dart", content, err
}

func renderFeatureTable(lines []ordering.ClassifiedLine) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Line", "Class", "Type", "Text"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, l := range lines {
		table.Append([]string{
			fmt.Sprintf("%d", l.Line+1),
			l.Class,
			l.Type.String(),
			strings.TrimRight(l.Text, "\r"),
		})
	}

	table.Render()

	return tableBuffer.String()
}
