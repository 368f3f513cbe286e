package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

type templates struct {
	game  *template.Template
	frag  *template.Template
	index *template.Template
}

// gameData is what the game fragment renders.
type gameData struct {
	ID    string
	View  app.View
	Error string
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellSymbol": func(c domain.Cell) string { return c.String() },
		"occupied":   func(c domain.Cell) bool { return c != domain.Empty },
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>
.board-row{display:flex}
.board-row form{margin:0}
.square{width:3em;height:3em;font-size:1.5em;font-weight:bold}
.winning-square{background:#ffd54f}
.alert{color:#b00020}
.game{display:flex;gap:2em}
</style>
</head><body>{{template "content" .}}</body></html>`))
	template.Must(base.New("game").Parse(gameTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-Tac-Toe</h1><form action="/game" method="post"><button>New game</button></form>`))
	page := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>Tic-Tac-Toe</h1>
{{template "game" .}}
<form action="/game" method="post"><button>New game</button></form>`))
	frag := template.Must(template.New("game_only").Funcs(funcs()).Parse(gameTemplate))
	return &templates{game: page, frag: frag, index: index}
}

func renderTemplate(t *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if name == "" {
		err = t.Execute(&buf, data)
	} else {
		err = t.ExecuteTemplate(&buf, name, data)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const gameTemplate = `
<div id="game" class="game">
  <div class="game-board">
    <div class="status">{{.View.Status}}</div>
    {{if .Error}}
    <div class="alert">{{.Error}}</div>
    {{end}}
    {{range $r := iter 3}}
    <div class="board-row">
      {{range $c := iter 3}}{{$i := add (mul $r 3) $c}}{{$cell := index $.View.Board $i}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#game" hx-swap="outerHTML" action="/game/{{$.ID}}/play" method="post">
        <input type="hidden" name="i" value="{{$i}}">
        <button type="submit" class="square{{if $.View.Winning $i}} winning-square{{end}}" {{if or $.View.Over (occupied $cell)}}disabled{{end}}>{{cellSymbol $cell}}</button>
      </form>
      {{end}}
    </div>
    {{end}}
  </div>
  <div class="game-info">
    <form hx-post="/game/{{.ID}}/sort" hx-target="#game" hx-swap="outerHTML" action="/game/{{.ID}}/sort" method="post">
      <button type="submit">{{.View.SortLabel}}</button>
    </form>
    <ol>
      {{range .View.Moves}}
      <li>
        {{if .Current}}<span>{{.Label}}</span>{{else}}
        <form hx-post="/game/{{$.ID}}/jump" hx-target="#game" hx-swap="outerHTML" action="/game/{{$.ID}}/jump" method="post">
          <input type="hidden" name="move" value="{{.Move}}">
          <button type="submit">{{.Label}}</button>
        </form>
        {{end}}
      </li>
      {{end}}
    </ol>
  </div>
</div>
`
