package probe

import (
	"regexp"

	"github.com/nao1215/proxyspray/internal/model"
)

// schemePattern extracts the leading scheme token from a URL string.
// It is the same leading-prefix rule the input package uses for scheme
// assumption, so "https://x" yields "https" and "http://x" yields "http".
var schemePattern = regexp.MustCompile(`^(https?)`)

// Compatible reports whether a probe through proxy to target makes sense:
// both must carry the same leading scheme token. If either extraction
// fails, the pair is silently incompatible; no error is reported, the pair
// is simply never dispatched.
func Compatible(proxy model.Proxy, target string) bool {
	pm := schemePattern.FindStringSubmatch(proxy.Address)
	tm := schemePattern.FindStringSubmatch(target)
	return pm != nil && tm != nil && pm[1] == tm[1]
}
