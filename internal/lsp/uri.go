package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath maps a file: URI (or a bare path) to an absolute local path.
// Other schemes such as untitled: yield "".
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if uri == "" || err != nil {
		return ""
	}
	var p string
	switch u.Scheme {
	case "file":
		p = u.Path
	case "":
		p = uri
	default:
		return ""
	}
	if s, err := url.PathUnescape(p); err == nil {
		p = s
	}
	return absPath(filepath.FromSlash(p))
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(absPath(path))}).String()
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// canonicalURI normalizes file URIs so that differently escaped forms of
// one path share a document. Other schemes (untitled:) are kept verbatim.
func canonicalURI(uri string) string {
	if path := uriToPath(uri); path != "" {
		return pathToURI(path)
	}
	return uri
}
