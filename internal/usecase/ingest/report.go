package ingest

// maxFailureDetails caps how many per-feed failure entries a report carries.
const maxFailureDetails = 20

// FeedFailure describes one feed that could not be fetched during a run.
type FeedFailure struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Report summarizes one ingestion run. Individual feed failures are in-band:
// a run with failed feeds is still a successful run.
type Report struct {
	Status             string        `json:"status"`
	TotalFetched       int           `json:"total_fetched"`
	NewArticles        int           `json:"new_articles"`
	SuccessfulFeeds    int           `json:"successful_feeds"`
	CachedFeeds        int           `json:"cached_feeds"`
	FailedFeeds        int           `json:"failed_feeds"`
	FailedFeedDetails  []FeedFailure `json:"failed_feed_details"`
	DuplicateArticles  int           `json:"duplicate_articles"`
	OldArticlesDeleted int64         `json:"old_articles_deleted"`
	DeletedForCapacity int64         `json:"deleted_for_capacity"`
	MaxArticles        int           `json:"max_articles"`
	RetentionDays      int           `json:"retention_days"`
}

// addFailure records a feed failure, keeping at most maxFailureDetails
// detail entries while still counting every failure.
func (r *Report) addFailure(name, url, errMsg string) {
	r.FailedFeeds++
	if len(r.FailedFeedDetails) < maxFailureDetails {
		r.FailedFeedDetails = append(r.FailedFeedDetails, FeedFailure{
			Name:  name,
			URL:   url,
			Error: errMsg,
		})
	}
}
