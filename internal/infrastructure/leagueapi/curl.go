package leagueapi

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// buildCurlPreview renders a copy-pasteable request for debug logs with the token masked.
func buildCurlPreview(method, fullURL string, body []byte, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart(method)
	appendPart(shellQuote(fullURL))
	if withToken {
		appendPart("-H")
		appendPart(shellQuote("Authorization: Bearer ***"))
	}
	if len(body) > 0 {
		appendPart("-H")
		appendPart(shellQuote("Content-Type: application/json"))
		appendPart("-d")
		appendPart(shellQuote(abbreviate(string(body), 4096)))
	}

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
