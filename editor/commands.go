package editor

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/notepad/document"
)

// CommandKind identifies a modified-key command.
type CommandKind uint8

const (
	CommandSave CommandKind = iota
	CommandSaveAs
	CommandOpen
	CommandRun
	CommandPaste
	CommandCapsLock
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandSave:
		return "save"
	case CommandSaveAs:
		return "save as"
	case CommandOpen:
		return "open"
	case CommandRun:
		return "run"
	case CommandPaste:
		return "paste"
	case CommandCapsLock:
		return "caps lock"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// runFinishedMsg is delivered when the interpreter started by CommandRun exits.
type runFinishedMsg struct {
	name string
	err  error
}

func (m Model) commandFor(msg tea.KeyMsg) (CommandKind, bool) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Save):
		return CommandSave, true
	case key.Matches(msg, km.SaveAs):
		return CommandSaveAs, true
	case key.Matches(msg, km.Open):
		return CommandOpen, true
	case key.Matches(msg, km.Run):
		return CommandRun, true
	case key.Matches(msg, km.Paste):
		return CommandPaste, true
	case key.Matches(msg, km.CapsLock):
		return CommandCapsLock, true
	case key.Matches(msg, km.Quit):
		return CommandQuit, true
	default:
		return 0, false
	}
}

// Exec runs a command as if its key binding had been pressed.
func (m Model) Exec(kind CommandKind) (Model, tea.Cmd) {
	switch kind {
	case CommandSave:
		err := m.doc.Save()
		if errors.Is(err, document.ErrNoFileName) {
			return m.startPrompt(promptSaveAs)
		}
		m.reportSaved(err)
		return m, nil
	case CommandSaveAs:
		return m.startPrompt(promptSaveAs)
	case CommandOpen:
		return m.startPrompt(promptOpen)
	case CommandRun:
		return m.run()
	case CommandPaste:
		m.paste()
		return m, nil
	case CommandCapsLock:
		m.capsLock = !m.capsLock
		if m.capsLock {
			m.status = infoStatus("caps lock on")
		} else {
			m.status = infoStatus("caps lock off")
		}
		return m, nil
	case CommandQuit:
		if m.buf.Modified() && !m.quitArmed {
			m.quitArmed = true
			m.status = errorStatus("unsaved changes: press quit again to discard them")
			return m, nil
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m *Model) reportSaved(err error) {
	if err != nil {
		log.Printf("save failed: %v", err)
		m.status = errorStatus(err.Error())
		return
	}
	log.Printf("saved %s", m.doc.Path())
	m.status = infoStatus("saved " + m.doc.Name())
}

func (m *Model) reportOpened(err error) {
	if err != nil {
		log.Printf("open failed: %v", err)
		m.status = errorStatus(err.Error())
		return
	}
	log.Printf("opened %s", m.doc.Path())
	if m.doc.InvalidUTF8() {
		m.status = errorStatus("opened " + m.doc.Name() + ": not UTF-8, saving will rewrite invalid bytes")
		return
	}
	m.status = infoStatus("opened " + m.doc.Name())
}

func (m *Model) paste() {
	if m.cfg.Clipboard == nil {
		m.status = errorStatus("clipboard unavailable")
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		log.Printf("paste failed: %v", err)
		m.status = errorStatus("paste: " + err.Error())
		return
	}
	if s == "" {
		return
	}
	m.buf.InsertText(s)
	m.status = statusLine{}
}

// run hands the terminal to the interpreter until it exits. The document
// must be named and saved; otherwise nothing is started.
func (m Model) run() (Model, tea.Cmd) {
	cmd, err := m.doc.Command(context.Background())
	switch {
	case errors.Is(err, document.ErrNoFileName):
		m.status = errorStatus("nothing to run: save the file first")
		return m, nil
	case errors.Is(err, document.ErrUnsaved):
		m.status = errorStatus("unsaved changes: save before running")
		return m, nil
	case err != nil:
		m.status = errorStatus(err.Error())
		return m, nil
	}

	name, path := m.doc.Name(), m.doc.Path()
	log.Printf("run %s", strings.Join(cmd.Args, " "))
	m.status = infoStatus("running " + name)
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return runFinishedMsg{name: name, err: document.RunResult(path, err)}
	})
}

func (m Model) handleRunFinished(msg runFinishedMsg) Model {
	var runErr *document.RunError
	switch {
	case msg.err == nil:
		log.Printf("run %s: ok", msg.name)
		m.status = infoStatus("run finished: " + msg.name)
	case errors.As(msg.err, &runErr):
		log.Printf("run %s: exit %d", msg.name, runErr.ExitCode)
		m.status = errorStatus(runErr.Error())
	default:
		log.Printf("run %s: %v", msg.name, msg.err)
		m.status = errorStatus("run " + msg.name + ": " + msg.err.Error())
	}
	return m
}
