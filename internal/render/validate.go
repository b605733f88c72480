package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// headElements are the elements a fragment may contain.
var headElements = map[string]bool{
	"base":     true,
	"link":     true,
	"meta":     true,
	"noscript": true,
	"script":   true,
	"style":    true,
	"title":    true,
}

var voidElements = map[string]bool{
	"base": true,
	"link": true,
	"meta": true,
}

// ValidateFragments checks that every fragment is well-formed head markup:
// only head elements, balanced tags and no stray text.
func ValidateFragments(fragments []string) error {
	for i, fragment := range fragments {
		if err := validateFragment(fragment); err != nil {
			return fmt.Errorf("html fragment %d %q: %w", i, fragment, err)
		}
	}
	return nil
}

func validateFragment(fragment string) error {
	if strings.TrimSpace(fragment) == "" {
		return errors.New("empty fragment")
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var stack []string
	elements := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				return z.Err()
			}
			if len(stack) > 0 {
				return fmt.Errorf("unclosed <%s>", stack[len(stack)-1])
			}
			if elements == 0 {
				return errors.New("no elements")
			}
			return nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !headElements[tag] {
				return fmt.Errorf("<%s> is not allowed in the document head", tag)
			}
			elements++
			if tt == html.StartTagToken && !voidElements[tag] {
				stack = append(stack, tag)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if len(stack) == 0 || stack[len(stack)-1] != tag {
				return fmt.Errorf("unexpected </%s>", tag)
			}
			stack = stack[:len(stack)-1]

		case html.TextToken:
			if len(stack) == 0 && strings.TrimSpace(string(z.Text())) != "" {
				return fmt.Errorf("unexpected text %q", strings.TrimSpace(string(z.Text())))
			}

		case html.DoctypeToken:
			return errors.New("unexpected doctype")

		case html.CommentToken:
		}
	}
}
