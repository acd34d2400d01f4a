package release

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"
)

// RenderTemplate executes a name or description template. The template
// sees "version" and "notes"; referencing any other key is an error.
func RenderTemplate(name, text string, next models.NextRelease) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing %s template: %w", name, err)
	}

	var builder strings.Builder
	data := map[string]string{
		"version": next.Version,
		"notes":   next.Notes,
	}
	if err := tmpl.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", name, err)
	}
	return builder.String(), nil
}
