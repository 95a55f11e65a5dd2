package render

const pageTpl = `
{{define "shows"}}<div id="showsContainer">
{{- range .}}
<div class="card show-card">
  <h2><a class="show-link" href="/shows/{{.ID}}" data-show-id="{{.ID}}">{{.Name}}</a></h2>
  {{if .PosterURL}}<img class="show-image" src="{{.PosterURL}}" alt="{{.Name}}">{{end}}
  <div class="show-summary">{{sanitize .Summary}}</div>
  <dl>
    <dt>Genres</dt><dd class="show-genres">{{genres .Genres}}</dd>
    <dt>Status</dt><dd class="show-status">{{.Status}}</dd>
    <dt>Rating</dt><dd class="show-rating">{{rating .Rating}}</dd>
    <dt>Runtime</dt><dd class="show-runtime">{{runtime .Runtime}}</dd>
  </dl>
</div>
{{- end}}
</div>{{end}}

{{define "episodes"}}<div id="root">
{{- range .}}
<div class="card episode-card" data-episode-id="{{.ID}}">
  <h1>{{episodeTitle .}}</h1>
  {{if .PosterURL}}<img src="{{.PosterURL}}" alt="{{.Name}}">{{end}}
  <div class="episode-summary">{{sanitize .Summary}}</div>
  <a href="{{attribution}}" target="_blank" rel="noopener">[TVMaze.com]</a>
</div>
{{- else}}
<p class="empty">No episodes found.</p>
{{- end}}
</div>{{end}}

{{define "episodeSelect"}}<select id="episodeSelect" name="episode">
  <option value="{{allEpisodes}}"{{if eq .Selected allEpisodes}} selected{{end}}>Show All Episodes</option>
{{- range .Episodes}}
  {{$id := itoa .ID}}<option value="{{$id}}"{{if eq $.Selected $id}} selected{{end}}>{{optionLabel .}}</option>
{{- end}}
</select>{{end}}

{{define "showSelect"}}<select id="showSelect" name="show">
  <option value="">Select a show</option>
{{- range .Shows}}
  <option value="{{.ID}}"{{if eq $.Selected .ID}} selected{{end}}>{{.Name}}</option>
{{- end}}
</select>{{end}}

{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Show}}{{.Show.Name}} | {{end}}ShowShelf</title>
</head>
<body>
<header>
  <h1>ShowShelf</h1>
  {{if eq .View.String "episodes"}}<a id="backToShows" href="/back">Back to shows</a>{{end}}
</header>
{{with .Message}}<div id="message" class="message error" role="alert">{{.}}</div>{{end}}
{{if eq .View.String "episodes"}}
<section id="episodesView">
  {{with .Show}}<h2 class="show-title">{{.Name}}</h2>{{end}}
  <form action="/episodes/select" method="get">
    {{template "episodeSelect" (episodeSelector .AllEpisodes .SelectedEpisode)}}
    <button type="submit">Go</button>
  </form>
  <form action="/episodes" method="get">
    <input id="searchInput" type="search" name="q" value="{{.SearchInput}}" placeholder="Search episodes">
    <button type="submit">Search</button>
  </form>
  {{if .CountVisible}}<p id="searchCount">{{.EpisodeCount}}</p>{{end}}
  {{template "episodes" .Episodes}}
</section>
{{else}}
<section id="showsView">
  <form action="/shows/select" method="get">
    {{template "showSelect" (showSelector .AllShows .ShowID)}}
    <button type="submit">Open</button>
  </form>
  <form action="/shows" method="get">
    <input id="showSearchInput" type="search" name="q" value="{{.ShowSearchTerm}}" placeholder="Search shows">
    <button type="submit">Search</button>
  </form>
  {{if .ShowsLoaded}}
  {{if .ShowSearchTerm}}<p id="showCount">{{.ShowCount}}</p>{{end}}
  {{template "shows" .Shows}}
  {{end}}
</section>
{{end}}
</body>
</html>
{{end}}
`
