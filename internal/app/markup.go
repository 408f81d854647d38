package app

import (
	"strings"

	"github.com/iamdavidjackson/prototype-base/internal/breakpoint"
)

// DefaultMarkup is the demo page mounted when Options.Markup is empty.
const DefaultMarkup = `<!DOCTYPE html>
<html>
<head><title>prototype-base</title></head>
<body>
<header id="masthead" data-module="masthead" data-page="/home/landing">
  <h1>prototype-base</h1>
</header>
<nav id="nav" data-module="nav">
  <ul>
    <li><a href="/home">home</a></li>
    <li><a href="/about">about</a></li>
  </ul>
</nav>
</body>
</html>`

// withLegacyBody adds the legacy class to the first <body> tag of markup.
func withLegacyBody(markup string) string {
	i := strings.Index(markup, "<body")
	if i < 0 {
		return markup
	}
	end := strings.Index(markup[i:], ">")
	if end < 0 {
		return markup
	}
	tag := markup[i : i+end]
	if strings.Contains(tag, "class=\"") {
		tag = strings.Replace(tag, "class=\"", "class=\""+breakpoint.LegacyClass+" ", 1)
	} else {
		tag += ` class="` + breakpoint.LegacyClass + `"`
	}
	return markup[:i] + tag + markup[i+end:]
}
