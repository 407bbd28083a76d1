package media

import (
	"fmt"
	"sort"
	"strings"
)

var allowedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

var allowedExtensionList = buildExtensionList()

func buildExtensionList() []string {
	list := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list
}

// AllowedFile reports whether the file name carries an accepted image extension.
func AllowedFile(name string) bool {
	_, ok := allowedExtensions[Extension(name)]
	return ok
}

func isAllowedMime(mimeType string) bool {
	for _, value := range allowedExtensions {
		if value == mimeType {
			return true
		}
	}
	return false
}

func allowedDescription() string {
	return humanReadableList(allowedExtensionList)
}

func humanReadableList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fmt.Sprintf("%s or %s", items[0], items[1])
	default:
		return fmt.Sprintf("%s, or %s", strings.Join(items[:len(items)-1], ", "), items[len(items)-1])
	}
}
