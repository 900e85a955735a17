package render

import (
	"html/template"
	"io"

	"github.com/lei/jobtabs/internal/widget"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
{{- if .Loading}}
<meta http-equiv="refresh" content="1">
{{- end}}
<title>Jobs</title>
</head>
<body>
{{- if .Loading}}
<section class="jobs-center">
<div class="loading"></div>
</section>
{{- else}}
<section class="jobs-center">
<div class="btn-container">
{{- range .Buttons}}
<form method="post" action="select"><button type="submit" name="index" value="{{.Index}}" class="job-btn{{if .Active}} active-btn{{end}}">{{.Label}}</button></form>
{{- end}}
</div>
{{- with .Detail}}
{{- if .Empty}}
<article class="job-info empty"><p>No job selected.</p></article>
{{- else}}
<article class="job-info">
<h3>{{.Title}}</h3>
<span class="job-company">{{.Company}}</span>
<p class="job-date">{{.Dates}}</p>
{{- range .Duties}}
<div class="job-desc"><p>{{.}}</p></div>
{{- end}}
</article>
{{- end}}
{{- end}}
</section>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Loading bool
	Buttons []Button
	Detail  Detail
}

// HTML writes the full page for s. While loading only the indicator is
// rendered; once ready the button list and detail panel are rendered even
// if the job list is empty.
func HTML(w io.Writer, s widget.State) error {
	data := pageData{Loading: s.Loading()}
	if !data.Loading {
		data.Buttons = Buttons(s)
		data.Detail = JobDetail(s)
	}
	return pageTemplate.Execute(w, data)
}
