package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	builtindocs "github.com/menpo/shogun/docs"
	"github.com/menpo/shogun/internal/ui"
)

// Swapped out by tests.
var docsStdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }

// docTopic is one bundled documentation page.
type docTopic struct {
	Section string `json:"section"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Path    string `json:"path"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse the bundled documentation",
	Long: `Browse long-form documentation bundled into the shogun binary.

Without arguments, lists the available topics. With a topic name, prints
it; markdown is styled when stdout is a terminal.

Examples:
  shogun docs
  shogun docs getting-started
  shogun docs dispatch-rules`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listDocTopics()
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild shogun so bundled docs are available")
		}
		if len(args) == 0 {
			return listDocs(cmd.OutOrStdout(), topics)
		}
		return showDoc(cmd.OutOrStdout(), topics, args[0])
	},
}

// listDocTopics walks the embedded docs tree. Topic IDs are file names
// without the extension; titles come from the first heading.
func listDocTopics() ([]docTopic, error) {
	var topics []docTopic
	err := fs.WalkDir(builtindocs.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		data, err := fs.ReadFile(builtindocs.FS, p)
		if err != nil {
			return err
		}
		topics = append(topics, docTopic{
			Section: path.Dir(p),
			ID:      strings.TrimSuffix(path.Base(p), ".md"),
			Title:   docTitle(string(data)),
			Path:    p,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Section != topics[j].Section {
			return topics[i].Section < topics[j].Section
		}
		return topics[i].ID < topics[j].ID
	})
	return topics, nil
}

// docTitle extracts the first top-level heading, falling back to the first
// non-blank line.
func docTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func listDocs(w io.Writer, topics []docTopic) error {
	if isJSONOutput() {
		outputSuccess(topics, &Meta{Count: len(topics)})
		return nil
	}

	section := ""
	list := ui.NewList()
	for _, t := range topics {
		if t.Section != section {
			if section != "" {
				fmt.Fprint(w, list.String())
				fmt.Fprintln(w)
				list = ui.NewList()
			}
			section = t.Section
			fmt.Fprintln(w, ui.Header(section))
		}
		list.Add(fmt.Sprintf("%s  %s", ui.Accent.Render(t.ID), ui.Muted.Render(t.Title)))
	}
	fmt.Fprint(w, list.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Hint("Run 'shogun docs <topic>' to read one."))
	return nil
}

func showDoc(w io.Writer, topics []docTopic, name string) error {
	topic, ok := findDocTopic(topics, name)
	if !ok {
		return handleError(ErrDocNotFound,
			fmt.Errorf("no docs topic %q", name),
			"Run 'shogun docs' to list topics")
	}

	data, err := fs.ReadFile(builtindocs.FS, topic.Path)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]string{"topic": topic.ID, "content": string(data)}, nil)
		return nil
	}

	if !docsStdoutIsTerminal() {
		fmt.Fprint(w, string(data))
		return nil
	}

	dc := ui.NewDisplayContext()
	rendered, err := ui.RenderMarkdown(string(data), dc.AvailableWidth(ui.MarkdownRenderMargin))
	if err != nil {
		return handleError(ErrInternal, err, "")
	}
	fmt.Fprint(w, rendered)
	return nil
}

// findDocTopic matches by ID, then by section/ID.
func findDocTopic(topics []docTopic, name string) (docTopic, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, t := range topics {
		if t.ID == name {
			return t, true
		}
	}
	for _, t := range topics {
		if t.Section+"/"+t.ID == name {
			return t, true
		}
	}
	return docTopic{}, false
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
