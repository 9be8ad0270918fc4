package trending

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const defaultBaseURL = "https://github.com/trending"

// Since filters supported by the trending page.
const (
	SinceDaily   = "daily"
	SinceWeekly  = "weekly"
	SinceMonthly = "monthly"
)

// Entry is one repository as it appears on the trending page. Counts here
// come from the rendered page, not the API, so they can lag slightly.
// StarsToday is the star gain over the page's period (day, week or month).
type Entry struct {
	Rank        int
	Owner       string
	Name        string
	FullName    string
	Url         string
	Description string
	Language    string
	Stars       int
	StarsToday  int
	Forks       int
}

// Scraper fetches and parses the GitHub trending page.
type Scraper struct {
	BaseURL string
	http    *http.Client
}

func NewScraper() *Scraper {
	return &Scraper{
		BaseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads the trending page for an optional language filter and
// parses it into entries, ranked in page order.
func (s *Scraper) Fetch(ctx context.Context, language string, since string) ([]Entry, error) {
	if since == "" {
		since = SinceDaily
	}

	url := s.BaseURL
	if language != "" {
		url = fmt.Sprintf("%s/%s", url, strings.ToLower(language))
	}
	url = fmt.Sprintf("%s?since=%s", url, since)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; GitScoutBot/1.0)")
	req.Header.Set("Accept", "text/html")

	res, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trending page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trending page returned status %d", res.StatusCode)
	}

	doc, err := html.Parse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trending page: %w", err)
	}

	return Parse(doc), nil
}

// Parse walks a trending page document and extracts its repository rows.
// Rows whose repo link cannot be resolved are skipped.
func Parse(doc *html.Node) []Entry {
	var entries []Entry
	rank := 0

	for _, article := range findAll(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Article && hasClass(n, "Box-row")
	}) {
		link := findFirst(article, func(n *html.Node) bool {
			return n.DataAtom == atom.A && parentIs(n, atom.H2)
		})
		if link == nil {
			continue
		}

		href := attrValue(link, "href")
		parts := strings.Split(strings.Trim(href, "/"), "/")
		if len(parts) < 2 {
			continue
		}
		owner, name := parts[0], parts[1]
		fullName := owner + "/" + name

		rank++
		entry := Entry{
			Rank:     rank,
			Owner:    owner,
			Name:     name,
			FullName: fullName,
			Url:      "https://github.com/" + fullName,
		}

		if p := findFirst(article, func(n *html.Node) bool { return n.DataAtom == atom.P }); p != nil {
			entry.Description = collapseSpace(collectText(p))
		}

		if lang := findFirst(article, func(n *html.Node) bool {
			return attrValue(n, "itemprop") == "programmingLanguage"
		}); lang != nil {
			entry.Language = collapseSpace(collectText(lang))
		}

		if stars := findFirst(article, func(n *html.Node) bool {
			return n.DataAtom == atom.A && strings.HasSuffix(attrValue(n, "href"), "/stargazers")
		}); stars != nil {
			entry.Stars = parseNumber(collectText(stars))
		}

		if forks := findFirst(article, func(n *html.Node) bool {
			return n.DataAtom == atom.A && strings.HasSuffix(attrValue(n, "href"), "/forks")
		}); forks != nil {
			entry.Forks = parseNumber(collectText(forks))
		}

		if today := findFirst(article, func(n *html.Node) bool {
			return n.DataAtom == atom.Span && hasClass(n, "d-inline-block") && hasClass(n, "float-sm-right")
		}); today != nil {
			entry.StarsToday = parseStarsToday(collectText(today))
		}

		entries = append(entries, entry)
	}

	return entries
}

var (
	starsTodayRe = regexp.MustCompile(`([\d,]+)\s*stars?\s*(today|this week|this month)`)
	nonDigitRe   = regexp.MustCompile(`[^\d]`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

func parseStarsToday(text string) int {
	m := starsTodayRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	return n
}

func parseNumber(text string) int {
	cleaned := nonDigitRe.ReplaceAllString(strings.TrimSpace(text), "")
	if cleaned == "" {
		return 0
	}
	n, _ := strconv.Atoi(cleaned)
	return n
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func parentIs(n *html.Node, a atom.Atom) bool {
	return n.Parent != nil && n.Parent.DataAtom == a
}

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && pred(n) {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, pred)...)
	}
	return out
}

func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
