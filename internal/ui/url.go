package ui

import (
	"fmt"
	"net/url"
	"strings"

	"mvdan.cc/xurls/v2"
)

var strictURLs = xurls.Strict()

// ExtractURL returns the first http(s) URL found in text, or the trimmed text
// when it holds none
func ExtractURL(text string) string {
	text = strings.TrimSpace(text)
	for _, candidate := range strictURLs.FindAllString(text, -1) {
		if isWebURL(candidate) {
			return candidate
		}
	}
	return text
}

// validateURL checks that input is an http(s) URL
func validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != URLSchemeHTTP && parsedURL.Scheme != URLSchemeHTTPS {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}

func isWebURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, URLSchemeHTTP+"://") || strings.HasPrefix(lower, URLSchemeHTTPS+"://")
}
