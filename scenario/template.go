package scenario

import (
	"bytes"
	"embed"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/erraggy/oasfixture/fixture"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl"))

var templateFuncs = template.FuncMap{
	"quote":   strconv.Quote,
	"declare": declare,
}

// exampleData feeds templates/example.go.tmpl.
type exampleData struct {
	Description    string
	Client         string
	ClientImport   string
	Version        string
	VersionPackage string
	VersionImport  string
	Groups         []variableGroup
	Enable         []string
	Body           string
	API            string
	OperationID    string
	Arguments      string
	HasResponse    bool
}

// variableGroup holds the variables read from one given step.
type variableGroup struct {
	Step      string
	Variables []fixture.Variable
}

func groupVariables(vars []fixture.Variable) []variableGroup {
	var groups []variableGroup
	for _, v := range vars {
		if n := len(groups); n > 0 && groups[n-1].Step == v.Step {
			groups[n-1].Variables = append(groups[n-1].Variables, v)
			continue
		}
		groups = append(groups, variableGroup{Step: v.Step, Variables: []fixture.Variable{v}})
	}
	return groups
}

// declare returns the statement reading a given variable from the environment.
func declare(v fixture.Variable) string {
	env := "os.Getenv(" + strconv.Quote(v.Key) + ")"
	switch v.Kind {
	case "int64":
		return v.Name + ", _ := strconv.ParseInt(" + env + ", 10, 64)"
	case "float64":
		return v.Name + ", _ := strconv.ParseFloat(" + env + ", 64)"
	default:
		return v.Name + " := " + env
	}
}

// executeTemplate renders the named template.
func executeTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatAndFixImports formats Go source and adds or removes imports the way
// goimports does.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}
