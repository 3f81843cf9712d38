package sitemap

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/rotisserie/eris"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Component renders the entries as a sitemaps.org urlset document. Text nodes go
// through templ's escaper, whose output is valid XML character data.
func Component(entries []Entry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err := io.WriteString(w, xmlDeclaration+`<urlset xmlns="`+templ.EscapeString(Namespace)+`">`+"\n"); err != nil {
			return eris.Wrap(err, "writing urlset header")
		}
		for _, entry := range entries {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := urlElement(entry).Render(ctx, w); err != nil {
				return eris.Wrapf(err, "writing url %s", entry.Loc)
			}
		}
		if _, err := io.WriteString(w, "</urlset>\n"); err != nil {
			return eris.Wrap(err, "writing urlset footer")
		}
		return nil
	})
}

func urlElement(entry Entry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "  <url>\n"+
			"    <loc>"+templ.EscapeString(entry.Loc)+"</loc>\n"+
			"    <lastmod>"+templ.EscapeString(entry.LastMod())+"</lastmod>\n"+
			"    <changefreq>"+templ.EscapeString(string(entry.ChangeFrequency))+"</changefreq>\n"+
			"    <priority>"+templ.EscapeString(entry.Priority)+"</priority>\n"+
			"  </url>\n")
		return err
	})
}
