package telegram

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"JobAdsMiner/internal/domain"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// ParseExport reads one exported HTML page and groups each default message with
// the joined messages that follow it.
func ParseExport(r io.Reader, sourceFile string) ([]domain.MessageGroup, domain.SourceCoverage, error) {
	coverage := domain.SourceCoverage{SourceFile: sourceFile}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, coverage, fmt.Errorf("parse export %s: %w", sourceFile, err)
	}

	messages := doc.Find("div.message").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass("default")
	})
	coverage.DefaultMessages = messages.Length()

	var groups []domain.MessageGroup
	for i := 0; i < messages.Length(); {
		head := messages.Eq(i)
		texts := []string{messageText(head)}
		ids := []string{attr(head, "id")}

		j := i + 1
		for ; j < messages.Length() && messages.Eq(j).HasClass("joined"); j++ {
			texts = append(texts, messageText(messages.Eq(j)))
			ids = append(ids, attr(messages.Eq(j), "id"))
			coverage.JoinedMessages++
		}

		groups = append(groups, domain.MessageGroup{
			SourceFile: sourceFile,
			GroupIndex: len(groups),
			MessageIDs: nonEmpty(ids),
			DateTitle:  attr(head.Find("div.pull_right.date.details").First(), "title"),
			FromName:   cleanText(head.Find("div.from_name").First()),
			Text:       strings.TrimSpace(strings.Join(nonEmpty(texts), "\n\n")),
		})
		i = j
	}
	coverage.Groups = len(groups)

	return groups, coverage, nil
}

func messageText(msg *goquery.Selection) string {
	return cleanText(msg.Find("div.text").First())
}

// cleanText joins the trimmed text nodes of a selection with newlines.
func cleanText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}

	text := html.UnescapeString(strings.Join(parts, "\n"))
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return v
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
