package view

import (
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ResultsWindows opens the values table and chart windows.
type ResultsWindows struct {
	Dialogs
}

// ShowValues opens a read-only text window holding table.
func (r *ResultsWindows) ShowValues(title, table string) {
	lines := strings.Count(table, "\n") + 1
	if lines > 30 {
		lines = 30
	}
	win := App.Toplevel()
	win.WmTitle(title)
	txt := win.Text(Height(lines), Width(48), Font("TkFixedFont"))
	Grid(txt, Row(0), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	scroll := win.TScrollbar(Command(func(e *Event) { e.Yview(txt) }))
	Grid(scroll, Row(0), Column(1), Sticky("ns"), Pady("0.4m"))
	txt.Configure(Yscrollcommand(func(e *Event) { e.ScrollSet(scroll) }))
	txt.Insert("1.0", table)
	txt.Configure(State("disabled"))
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	closeBtn := win.Button(Txt("Close"), Command(func() { Destroy(win) }))
	Grid(closeBtn, Row(1), Column(0), Columnspan(2), Sticky("e"), Padx("0.4m"), Pady("0.3m"))
	Bind(win, "<Escape>", Command(func() { Destroy(win) }))
}

// ShowChart opens a window showing the rendered chart.
func (r *ResultsWindows) ShowChart(title string, png []byte) {
	if len(png) == 0 {
		return
	}
	win := App.Toplevel()
	win.WmTitle(title)
	photo := NewPhoto(Data(png))
	lbl := win.Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(lbl, Row(0), Column(0), Padx("0.4m"), Pady("0.4m"))
	closeWin := func() {
		Destroy(win)
		// The photo outlives the window otherwise.
		photo.Delete()
	}
	WmProtocol(win.Window, "WM_DELETE_WINDOW", closeWin)
	closeBtn := win.Button(Txt("Close"), Command(closeWin))
	Grid(closeBtn, Row(1), Column(0), Sticky("e"), Padx("0.4m"), Pady("0.3m"))
	Bind(win, "<Escape>", Command(closeWin))
}
