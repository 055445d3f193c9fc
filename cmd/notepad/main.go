package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/notepad"
	"github.com/iw2rmb/notepad/buffer"
	"github.com/iw2rmb/notepad/document"
	"github.com/iw2rmb/notepad/editor"
)

const debugLogFile = "notepad-debug.log"

type model struct {
	editor editor.Model
}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.editor.View() }

type options struct {
	dir     string
	interp  string
	newline buffer.NewlineMode
	tab     int
	noColor bool
	debug   bool
	version bool
	file    string
}

// parseFlags parses args. Usage goes to usage when -h or -help is given, and
// the returned error is then flag.ErrHelp.
func parseFlags(args []string, usage io.Writer) (options, error) {
	var opts options
	var newline string

	fs := flag.NewFlagSet("notepad", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprintln(usage, "usage: notepad [flags] [file]")
		fs.SetOutput(usage)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
	}
	fs.StringVar(&opts.dir, "dir", "", "storage directory for saved files (default: "+document.DefaultDirName+" next to the executable)")
	fs.StringVar(&opts.interp, "interp", document.DefaultInterpreter, "interpreter command used by run, with optional arguments")
	fs.StringVar(&newline, "newline", buffer.NewlineSplit.String(), "enter key behavior: split or blank")
	fs.IntVar(&opts.tab, "tab", 4, "spaces inserted by the tab key")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	fs.BoolVar(&opts.debug, "debug", false, "write a debug log to "+debugLogFile)
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch newline {
	case buffer.NewlineSplit.String():
		opts.newline = buffer.NewlineSplit
	case buffer.NewlineBlank.String():
		opts.newline = buffer.NewlineBlank
	default:
		return options{}, fmt.Errorf("invalid -newline %q: want split or blank", newline)
	}
	if opts.tab <= 0 {
		return options{}, fmt.Errorf("invalid -tab %d: must be positive", opts.tab)
	}
	if strings.TrimSpace(opts.interp) == "" {
		return options{}, errors.New("invalid -interp: empty command")
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		return options{}, errors.New("at most one file argument is allowed")
	}
	return opts, nil
}

func runConfig(interp string) document.RunConfig {
	fields := strings.Fields(interp)
	return document.RunConfig{Interpreter: fields[0], Args: fields[1:]}
}

func newDocument(opts options) (*document.Document, error) {
	store := document.Store{Dir: opts.dir}
	if store.Dir == "" {
		var err error
		store, err = document.DefaultStore()
		if err != nil {
			return nil, err
		}
	}
	doc := document.New(document.Options{
		Store:  store,
		Run:    runConfig(opts.interp),
		Buffer: buffer.Options{Newline: opts.newline},
	})
	if opts.file == "" {
		return doc, nil
	}
	err := doc.Open(opts.file)
	if errors.Is(err, os.ErrNotExist) {
		// A new file: the first save creates it.
		err = doc.SetName(opts.file)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail(err)
	}
	if opts.version {
		fmt.Println("notepad " + notepad.VersionTag())
		return
	}

	if opts.debug || os.Getenv("NOTEPAD_DEBUG") != "" {
		f, err := tea.LogToFile(debugLogFile, "notepad")
		if err != nil {
			fail(err)
		}
		defer f.Close()
		opts.debug = true
	} else {
		// The terminal belongs to the UI.
		log.SetOutput(io.Discard)
	}
	if opts.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	doc, err := newDocument(opts)
	if err != nil {
		fail(err)
	}

	cfg := editor.Config{
		Document:     doc,
		ShowLineNums: true,
		Style:        editor.DefaultStyle(),
		TabWidth:     opts.tab,
	}
	if editor.SystemClipboardAvailable() {
		cfg.Clipboard = editor.SystemClipboard{}
	}
	if opts.debug {
		cfg.OnChange = func(ev editor.ChangeEvent) {
			log.Printf("change v%d cursor=%d:%d modified=%v", ev.Version, ev.Cursor.Row, ev.Cursor.Col, ev.Modified)
		}
	}
	log.Printf("start %s store=%s", notepad.VersionTag(), doc.Store().Dir)

	p := tea.NewProgram(model{editor: editor.New(cfg)}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	_, _ = os.Stderr.WriteString("notepad: " + err.Error() + "\n")
	os.Exit(1)
}
