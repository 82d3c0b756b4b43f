package export

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename returns the download name for a resume owner: whitespace runs become
// underscores and "_Resume.pdf" is appended.
func Filename(contactName string) string {
	return whitespaceRun.ReplaceAllString(contactName, "_") + "_Resume.pdf"
}

// ObjectName joins a storage prefix and a file name into an object key.
func ObjectName(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
