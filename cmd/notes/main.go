// Package main runs the interactive notes client: an interactive shell over
// the local note and settings stores, with JSON import and export.
package main

import (
	"bufio"
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/kv"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/logger"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/notes"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/settings"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/transfer"
)

var (
	version   string
	buildDate string
)

// app bundles the stores the shell operates on.
type app struct {
	notes    *notes.Store
	settings *settings.Store
	exports  string
	log      *zap.Logger
}

// repl runs the interactive shell loop, accepting commands to manage notes.
func repl(a *app) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("notes> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, new [list], list, show <id>, title <id> <text>,")
			fmt.Println("  content <id> <text>, tag <id> <tag>, untag <id> <tag>, color <id> <value>,")
			fmt.Println("  select <id>, reorder <dragged> <target>, delete <id>,")
			fmt.Println("  item add <note> | item text <note> <item> <text> | item toggle <note> <item> | item del <note> <item>,")
			fmt.Println("  sort <date|title|tags|manual>, theme <light|dark>, fontsize <small|medium|large>,")
			fmt.Println("  export [id], import <path>, exit")
		case "new":
			kind := models.TypeNote
			if len(args) > 1 && args[1] == "list" {
				kind = models.TypeList
			}
			n := a.notes.Create(kind, a.settings.Current().GlobalFontSize)
			fmt.Println("Created note", n.ID)
		case "list":
			a.printList()
		case "show":
			if len(args) < 2 {
				fmt.Println("Usage: show <id>")
				continue
			}
			n := a.notes.Get(args[1])
			if n == nil {
				fmt.Println("Note not found")
				continue
			}
			b, _ := json.MarshalIndent(n, "", "  ")
			fmt.Println(string(b))
		case "title", "content":
			if len(args) < 3 {
				fmt.Printf("Usage: %s <id> <text>\n", args[0])
				continue
			}
			a.editText(args[0], args[1], strings.Join(args[2:], " "))
		case "tag":
			if len(args) < 3 {
				fmt.Println("Usage: tag <id> <tag>")
				continue
			}
			a.addTag(args[1], args[2])
		case "untag":
			if len(args) < 3 {
				fmt.Println("Usage: untag <id> <tag>")
				continue
			}
			a.removeTag(args[1], args[2])
		case "color":
			if len(args) < 3 {
				fmt.Println("Usage: color <id> <value>")
				continue
			}
			a.setColor(args[1], args[2])
		case "select":
			if len(args) < 2 {
				fmt.Println("Usage: select <id>")
				continue
			}
			a.notes.ToggleSelect(args[1])
		case "reorder":
			if len(args) < 3 {
				fmt.Println("Usage: reorder <dragged> <target>")
				continue
			}
			a.notes.Reorder(args[1], args[2])
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.notes.Delete(args[1])
			fmt.Println("Note deleted")
		case "item":
			a.itemCommand(args[1:])
		case "sort":
			if len(args) < 2 {
				fmt.Println("Usage: sort <date|title|tags|manual>")
				continue
			}
			mode := models.SortMode(args[1])
			a.settings.Update(settings.Partial{SortBy: &mode})
		case "theme":
			if len(args) < 2 {
				fmt.Println("Usage: theme <light|dark>")
				continue
			}
			theme := models.Theme(args[1])
			s := a.settings.Update(settings.Partial{Theme: &theme})
			fmt.Println("Theme classes:", strings.Join(settings.ThemeClasses(s), " "))
		case "fontsize":
			if len(args) < 2 {
				fmt.Println("Usage: fontsize <small|medium|large>")
				continue
			}
			size := models.FontSize(args[1])
			a.settings.Update(settings.Partial{GlobalFontSize: &size})
		case "export":
			a.exportCommand(args[1:])
		case "import":
			if len(args) < 2 {
				fmt.Println("Usage: import <path>")
				continue
			}
			a.importCommand(args[1])
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (a *app) printList() {
	view := notes.SortedView(a.notes.All(), a.settings.Current().SortBy)
	if len(view) == 0 {
		fmt.Println("No notes yet")
		return
	}
	if count := a.notes.SelectedCount(); count > 0 {
		fmt.Printf("Selected notes: %d\n", count)
	}
	for _, n := range view {
		marker := " "
		if n.IsSelected {
			marker = "*"
		}
		fmt.Printf("%s %s  [%s]  %q  tags=%s\n", marker, n.ID, n.Type, n.Title, strings.Join(n.Tags, ","))
	}
}

func (a *app) editText(field, id, text string) {
	n := a.notes.Get(id)
	if n == nil {
		fmt.Println("Note not found")
		return
	}
	if field == "title" {
		n.Title = text
	} else {
		n.Content = text
	}
	n.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	a.notes.Update(*n)
}

func (a *app) addTag(id, tag string) {
	n := a.notes.Get(id)
	if n == nil {
		fmt.Println("Note not found")
		return
	}
	for _, t := range n.Tags {
		if t == tag {
			return
		}
	}
	n.Tags = append(n.Tags, tag)
	n.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	a.notes.Update(*n)
}

func (a *app) removeTag(id, tag string) {
	n := a.notes.Get(id)
	if n == nil {
		fmt.Println("Note not found")
		return
	}
	for i, t := range n.Tags {
		if t == tag {
			n.Tags = append(n.Tags[:i], n.Tags[i+1:]...)
			n.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			a.notes.Update(*n)
			return
		}
	}
}

func (a *app) setColor(id, color string) {
	n := a.notes.Get(id)
	if n == nil {
		fmt.Println("Note not found")
		return
	}
	n.Color = color
	n.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	a.notes.Update(*n)
}

func (a *app) itemCommand(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: item add <note> | item text <note> <item> <text> | item toggle <note> <item> | item del <note> <item>")
		return
	}
	switch args[0] {
	case "add":
		item := a.notes.AddItem(args[1])
		if item == nil {
			fmt.Println("List note not found")
			return
		}
		fmt.Println("Added item", item.ID)
	case "text":
		if len(args) < 4 {
			fmt.Println("Usage: item text <note> <item> <text>")
			return
		}
		a.notes.UpdateItemText(args[1], args[2], strings.Join(args[3:], " "))
	case "toggle":
		if len(args) < 3 {
			fmt.Println("Usage: item toggle <note> <item>")
			return
		}
		a.notes.ToggleItemCompleted(args[1], args[2])
	case "del":
		if len(args) < 3 {
			fmt.Println("Usage: item del <note> <item>")
			return
		}
		a.notes.DeleteItem(args[1], args[2])
	default:
		fmt.Println("Unknown item command")
	}
}

func (a *app) exportCommand(args []string) {
	var (
		artifact transfer.Artifact
		err      error
	)
	if len(args) > 0 {
		n := a.notes.Get(args[0])
		if n == nil {
			fmt.Println("Note not found")
			return
		}
		artifact, err = transfer.ExportSingle(*n)
	} else {
		artifact, err = transfer.Export(a.notes.All(), "")
	}
	if err != nil {
		fmt.Println("Export failed:", err)
		return
	}
	chain := transfer.DefaultChain(nil, nil, a.exports)
	if err := transfer.Deliver(artifact, chain, a.log); err != nil {
		fmt.Println("Export failed:", err)
		return
	}
	fmt.Printf("Exported %d notes to %s\n", artifact.Count, artifact.Filename)
}

func (a *app) importCommand(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Import failed:", err)
		return
	}
	imported, err := transfer.Import(data)
	if err != nil {
		fmt.Println("Import failed:", err)
		return
	}
	a.notes.Prepend(imported)
	fmt.Printf("Imported notes: %d\n", len(imported))
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		dataDir  string
		driver   string
		exports  string
		logLevel string
		showVer  bool
	)

	flag.StringVar(&dataDir, "d", "data", "data directory")
	flag.StringVar(&driver, "driver", "file", "persistence driver: file | sqlite | mem")
	flag.StringVar(&exports, "exports", ".", "directory for exported files")
	flag.StringVar(&logLevel, "l", "Warn", "log level")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Sticky Notes Client\nVersion: %s\nBuild Date: %s\n",
			cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	log := logger.New()
	if err := log.Init(logLevel); err != nil {
		fmt.Println("failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	medium, err := openMedium(driver, dataDir)
	if err != nil {
		log.Log.Fatal("cannot open storage", zap.Error(err))
	}
	adapter := kv.NewAdapter(medium, log.Log)

	a := &app{
		notes:    notes.NewStore(adapter),
		settings: settings.NewStore(adapter),
		exports:  exports,
		log:      log.Log,
	}
	repl(a)
}

// openMedium builds the persistence medium selected by configuration.
func openMedium(driver, dataDir string) (kv.Medium, error) {
	switch driver {
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		return kv.OpenSQLite(filepath.Join(dataDir, "notes.db"))
	case "mem":
		return kv.NewMemMedium(), nil
	default:
		return kv.NewFileMedium(dataDir)
	}
}
