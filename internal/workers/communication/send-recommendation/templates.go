package sendrecommendation

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"dogmatch-workers/internal/scoring"
)

const (
	subjectTemplate = `Your DogMatch: {{.Breed}} ({{.Score}}% compatible)`

	textTemplate = `Hi {{.Name}},

Your best match is the {{.Breed}}, {{.Score}}% compatible with what you told us.
{{range .Reasons}}
 - {{.}}{{end}}
{{if .Similar}}
You may also like: {{join .Similar ", "}}.{{end}}
`

	htmlTemplate = `<p>Hi {{.Name}},</p>
<p>Your best match is the <strong>{{.Breed}}</strong>, {{.Score}}% compatible with what you told us.</p>
<ul>{{range .Reasons}}<li>{{.}}</li>{{end}}</ul>
{{if .Similar}}<p>You may also like: {{join .Similar ", "}}.</p>{{end}}`

	smsTemplate = `DogMatch: your best match is the {{.Breed}} ({{.Score}}%).`
)

type message struct {
	Name    string
	Breed   string
	Score   int
	Reasons []string
	Similar []string
}

type rendered struct {
	Subject string
	Text    string
	HTML    string
	SMS     string
}

var (
	funcs = template.FuncMap{"join": strings.Join}

	subjectTmpl = template.Must(template.New("subject").Parse(subjectTemplate))
	textTmpl    = template.Must(template.New("text").Funcs(funcs).Parse(textTemplate))
	smsTmpl     = template.Must(template.New("sms").Parse(smsTemplate))
	htmlTmpl    = htmltemplate.Must(htmltemplate.New("html").Funcs(htmltemplate.FuncMap(funcs)).Parse(htmlTemplate))
)

func newMessage(name string, rec *scoring.RecommendationResult) message {
	m := message{
		Name:    name,
		Breed:   rec.BestMatch.Name,
		Score:   rec.CompatibilityScore,
		Reasons: rec.MatchReasons,
	}
	if m.Name == "" {
		m.Name = "there"
	}
	for _, s := range rec.SimilarBreeds {
		m.Similar = append(m.Similar, s.Breed.Name)
	}
	return m
}

func render(m message) (*rendered, error) {
	var out rendered
	var buf bytes.Buffer

	steps := []struct {
		exec func() error
		dst  *string
	}{
		{func() error { return subjectTmpl.Execute(&buf, m) }, &out.Subject},
		{func() error { return textTmpl.Execute(&buf, m) }, &out.Text},
		{func() error { return htmlTmpl.Execute(&buf, m) }, &out.HTML},
		{func() error { return smsTmpl.Execute(&buf, m) }, &out.SMS},
	}
	for _, s := range steps {
		buf.Reset()
		if err := s.exec(); err != nil {
			return nil, err
		}
		*s.dst = buf.String()
	}
	return &out, nil
}
