package view

import (
	"log/slog"
	"path/filepath"
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

var videoTypes = []FileType{
	{TypeName: "Videos", Extensions: []string{".avi", ".mp4", ".mov", ".mkv", ".mpg", ".wmv"}},
	{TypeName: "All files", Extensions: []string{"*"}},
}

var csvTypes = []FileType{
	{TypeName: "CSV", Extensions: []string{".csv"}},
	{TypeName: "All files", Extensions: []string{"*"}},
}

// Dialogs wraps the native Tk dialogs.
type Dialogs struct {
	Logger *slog.Logger
}

// AskVideoPath returns the chosen video or "" when cancelled.
func (d Dialogs) AskVideoPath() string {
	files := GetOpenFile(Title("Open video"), Filetypes(videoTypes))
	if len(files) == 0 {
		return ""
	}
	return strings.TrimSpace(files[0])
}

// AskSavePath returns the chosen CSV path or "" when cancelled. The .csv
// extension is added when missing.
func (d Dialogs) AskSavePath() string {
	path := strings.TrimSpace(GetSaveFile(Title("Save as"), Filetypes(csvTypes), Defaultextension(".csv")))
	if path == "" {
		return ""
	}
	if filepath.Ext(path) == "" {
		path += ".csv"
	}
	return path
}

func (d Dialogs) Confirm(title, msg string) bool {
	return MessageBox(Title(title), Msg(msg), Icon("warning"), Type("okcancel")) == "ok"
}

func (d Dialogs) ShowError(title, msg string) {
	if d.Logger != nil {
		d.Logger.Debug("error dialog", "title", title, "msg", msg)
	}
	MessageBox(Title(title), Msg(msg), Icon("error"), Type("ok"))
}
