package files

import (
	"bytes"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Path}}</title>
</head>
<body>
<h1>Directory listing for {{.Path}}</h1>
<hr>
<ul>
{{range .Items}}<li><a href="{{.Href}}">{{.Label}}</a></li>
{{end}}</ul>
<hr>
</body>
</html>
`))

type listingItem struct {
	Href  string
	Label string
}

// RenderListing renders the HTML directory listing for displayPath.
func RenderListing(displayPath string, entries []Entry) ([]byte, error) {
	items := make([]listingItem, 0, len(entries))
	for _, e := range entries {
		label := e.Name
		href := "./" + url.PathEscape(e.Name)
		if e.IsDir {
			label += "/"
			href += "/"
		}
		items = append(items, listingItem{Href: href, Label: label})
	}

	var buf bytes.Buffer
	err := listingTemplate.Execute(&buf, struct {
		Path  string
		Items []listingItem
	}{displayPath, items})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType infers the MIME type of name from its extension.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return fiber.MIMEOctetStream
	}
	if mime := utils.GetMIME(ext); mime != "" {
		return mime
	}
	return fiber.MIMEOctetStream
}
