// Package viewer serves a page that shows the ledger events as they happen.
package viewer

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/web"
)

//go:embed index.html
var indexHTML string

// Index renders the viewer page.
type Index struct {
	page []byte
}

// New parses the page template for the events path.
func New(eventsPath string) (*Index, error) {
	tmpl, err := template.New("index").Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ EventsPath string }{eventsPath}); err != nil {
		return nil, fmt.Errorf("executing index: %w", err)
	}

	return &Index{page: buf.Bytes()}, nil
}

// Handler writes the viewer page.
func (ig *Index) Handler(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	web.SetStatusCode(ctx, http.StatusOK)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(ig.page)
	return err
}
