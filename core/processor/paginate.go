package processor

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/logger"
	"github.com/relabs-tech/ghcrawler/core/policy"
)

// paginate implements spec.md §4.6's pagination fan-out: if the fetched
// response carries a Link header with rel="next", enqueue the remaining
// pages (current+1..last) in one bulk push at PrioritySoon, same type as
// req, per_page overwritten to 100. A malformed Link header is treated as
// "no next page" (crawlererr.ErrBadLinkHeader), not as a processing
// failure.
func (p *Processor) paginate(req *crawler.Request) {
	if req.Response == nil {
		return
	}
	links := parseLinkHeader(req.Response.Header.Get("Link"))
	nextRaw, ok := links["next"]
	if !ok {
		return
	}

	nextPage, err := pageNumber(nextRaw)
	if err != nil {
		logger.Default().Warnf("%s: %s", crawlererr.ErrBadLinkHeader, err.Error())
		return
	}

	lastPage := nextPage
	if lastRaw, ok := links["last"]; ok {
		if lp, err := pageNumber(lastRaw); err == nil {
			lastPage = lp
		}
	}

	baseURL, err := url.Parse(req.URL)
	if err != nil {
		logger.Default().Warnf("%s: %s", crawlererr.ErrBadLinkHeader, err.Error())
		return
	}

	var pages []*crawler.Request
	for pg := nextPage; pg <= lastPage; pg++ {
		u := *baseURL
		q := u.Query()
		q.Set("page", strconv.Itoa(pg))
		q.Set("per_page", "100")
		u.RawQuery = q.Encode()

		child := req.Child(policy.EdgeCollectionPage, req.Type, u.String(), nil)
		pages = append(pages, child)
	}
	if len(pages) == 0 {
		return
	}
	if err := req.Crawler.Queues().Push(pages, crawler.PrioritySoon); err != nil {
		logger.Default().Warnf("pagination push failed: %s", err.Error())
	}
}

func pageNumber(rawURL string) (int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("parsing link header url %q: %w", rawURL, err)
	}
	page := u.Query().Get("page")
	n, err := strconv.Atoi(page)
	if err != nil {
		return 0, fmt.Errorf("link header url %q has no numeric page parameter: %w", rawURL, err)
	}
	return n, nil
}
