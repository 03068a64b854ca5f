package uem

import (
	"fmt"
	"strings"
)

// normalizeHost prefixes https:// when host carries no scheme and strips one trailing slash.
func normalizeHost(host string) string {
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return strings.TrimSuffix(host, "/")
}

// BuildEndpoint assembles the absolute URL of an API call:
//
//	https://{host}/api/[v{version}/]{module}[/{path}]
//
// version 0 means unversioned. A path is appended with a single "/" separator unless it already starts with one.
// module and path are used as given; nothing is escaped.
func BuildEndpoint(host, module, path string, version int) string {
	base := normalizeHost(host)
	var url string
	if version == 0 {
		url = fmt.Sprintf("%s/api/%s", base, module)
	} else {
		url = fmt.Sprintf("%s/api/v%d/%s", base, version, module)
	}
	if path == "" {
		return url
	}
	if strings.HasPrefix(path, "/") {
		return url + path
	}
	return url + "/" + path
}
