package ramble

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ExecutionTemplate is the default execution_template.tpl. Placeholders use
// ramble's {variable} syntax.
const ExecutionTemplate = `#!/bin/bash
{batch_directives}

cd {experiment_run_dir}

{command}
`

// commandTemplate composes the {command} variable of an experiment.
const commandTemplate = `{{- range $name := keys .Env | sortAlpha }}
export {{ $name }}={{ index $.Env $name | quote }}
{{- end }}
{{ .Launcher }} {{ .Executable }}
`

// maxExpansionDepth bounds nested placeholder expansion.
const maxExpansionDepth = 8

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Command is the run command of one experiment.
type Command struct {
	Env        map[string]string
	Launcher   string
	Executable string
}

// Render produces the shell lines for the command.
func (c Command) Render() (string, error) {
	tmpl, err := template.New("command").Funcs(sprig.TxtFuncMap()).Parse(commandTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing command template: %w", err)
	}

	// sprig's keys only accepts map[string]interface{}
	env := make(map[string]interface{}, len(c.Env))
	for k, v := range c.Env {
		env[k] = v
	}

	data := struct {
		Env        map[string]interface{}
		Launcher   string
		Executable string
	}{env, c.Launcher, c.Executable}

	var b bytes.Buffer
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering command: %w", err)
	}

	return string(bytes.TrimLeft(b.Bytes(), "\n")), nil
}

// Expand replaces {name} placeholders from vars, following nested references.
// Unknown placeholders are left as they are.
func Expand(text string, vars map[string]interface{}) string {
	for i := 0; i < maxExpansionDepth; i++ {
		expanded := placeholder.ReplaceAllStringFunc(text, func(match string) string {
			name := match[1 : len(match)-1]
			if v, ok := vars[name]; ok {
				return fmt.Sprint(v)
			}

			return match
		})

		if expanded == text {
			break
		}

		text = expanded
	}

	return text
}
