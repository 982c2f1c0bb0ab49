package classify

import (
	"context"
	"regexp"
	"strings"

	"cybernewshub/internal/domain/entity"
)

// KeywordClassifier is the final, always-available tier. It scores the four
// content categories with weighted keyword, phrase, URL, and source signals
// and picks the highest scorer. Empty titles and all-zero scores default to
// News, so this tier never fails.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the keyword scoring tier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Name implements Classifier.
func (k *KeywordClassifier) Name() string { return "keyword" }

var cvePattern = regexp.MustCompile(`cve-\d{4}-\d+`)

// Event signals: meetups, announcements, conference reports.
var (
	strongEventKeywords = []string{
		"conference", "summit", "webinar", "workshop", "symposium", "expo", "exhibition",
		"rsvp", "register now", "register today", "early bird", "tickets", "agenda",
		"keynote speaker", "call for papers", "cfp", "submit abstract",
		"conference report", "event report", "conference coverage", "event coverage",
	}
	mediumEventKeywords = []string{
		"event", "meetup", "training", "bootcamp", "session", "presentation",
		"virtual event", "online event", "live event", "networking",
		"announcement", "announcing", "upcoming event",
	}
	eventPhrases = []string{
		"save the date", "join us", "don't miss", "coming soon",
		"speaker lineup", "event schedule", "conference program",
	}
	eventURLHints = []string{"/event", "/conference", "/webinar", "/workshop", "/summit", "/training"}
)

// Research signals: papers, whitepapers, technical analyses.
var (
	strongResearchKeywords = []string{
		"research paper", "whitepaper", "technical research", "academic paper",
		"published research", "peer-reviewed", "research findings", "scientific study",
		"latest research", "new research", "research publication",
	}
	mediumResearchKeywords = []string{
		"research", "study", "findings", "discovered",
		"deep dive", "technical analysis", "threat analysis", "malware analysis",
		"reverse engineering", "vulnerability research", "security research",
	}
	researchPhrases = []string{
		"our research shows", "we discovered", "we found that", "analysis reveals",
		"according to our research", "research indicates", "study shows",
		"research reveals", "findings show",
	}
	researchURLHints    = []string{"/research", "/study", "/whitepaper", "/paper"}
	researchSourceHints = []string{"research", "lab", "citizen lab", "check point research"}
)

// Alert signals: advisories that call attention to specific attack types.
var (
	strongAlertKeywords = []string{
		"threat alert", "attack alert", "threat advisory", "attack advisory",
		"active attack", "ongoing attack", "attack campaign", "threat campaign",
		"malware campaign", "ransomware alert", "phishing alert", "apt alert",
		"threat actor", "attack group", "threat group", "call attention",
		"be aware of", "watch out for", "new attack", "emerging threat",
	}
	mediumAlertKeywords = []string{
		"alert", "advisory", "warning", "threat warning", "attack warning",
		"security alert", "critical alert", "urgent alert",
		"newsletter", "threat intelligence", "threat update",
	}
	alertPhrases = []string{
		"calls attention", "draws attention", "highlights threat", "warns about",
		"alert about", "advisory about", "threat targeting", "attack targeting",
		"be on the lookout", "be vigilant", "exercise caution",
	}
	vulnerabilityTerms = []string{"cve-", "vulnerability", "exploit", "zero-day", "0-day"}
	alertURLHints      = []string{"/alert", "/advisory", "/warning", "/threat", "/newsletter"}
	alertSourceHints   = []string{"cisa", "us-cert", "ncsc", "cert", "enisa", "cccs"}
)

// News signals: incident reports and latest news.
var (
	newsKeywords = []string{
		"incident", "breach", "data breach", "cyber attack", "hacked", "hacking",
		"compromised", "leak", "data leak", "ransomware attack", "malware attack",
		"latest news", "breaking news", "reported", "announced", "disclosed",
		"victim", "affected", "impacted", "stolen", "exposed",
	}
	newsPhrases = []string{
		"has been breached", "has been hacked", "was compromised", "fell victim",
		"reported a breach", "announced an incident", "disclosed an attack",
	}
	newsURLHints = []string{"/news", "/article", "/post", "/blog"}
)

// Classify implements Classifier. It never returns an error.
func (k *KeywordClassifier) Classify(_ context.Context, in Input) (Result, error) {
	return Result{
		Category:   k.Score(in),
		Confidence: 1,
		Method:     "keyword",
	}, nil
}

// Score runs the weighted scoring and returns the winning category.
func (k *KeywordClassifier) Score(in Input) entity.ContentType {
	if in.Title == "" {
		return entity.ContentNews
	}

	text := strings.ToLower(in.Title + " " + in.Description)
	urlLower := strings.ToLower(in.Link)
	sourceLower := strings.ToLower(in.Source)

	var event, research, alert, news int

	event += scoreTerms(text, strongEventKeywords, 3)
	event += scoreTerms(text, mediumEventKeywords, 2)
	event += scoreTerms(text, eventPhrases, 2)
	if containsAny(urlLower, eventURLHints) {
		event += 3
	}

	research += scoreTerms(text, strongResearchKeywords, 3)
	research += scoreTerms(text, mediumResearchKeywords, 2)
	research += scoreTerms(text, researchPhrases, 2)
	if containsAny(urlLower, researchURLHints) {
		research += 3
	}
	if containsAny(sourceLower, researchSourceHints) {
		research++
	}

	alert += scoreTerms(text, strongAlertKeywords, 4)
	alert += scoreTerms(text, mediumAlertKeywords, 2)
	alert += scoreTerms(text, alertPhrases, 3)
	if cvePattern.MatchString(text) {
		alert += 3
	}
	if containsAny(text, vulnerabilityTerms) {
		alert += 2
	}
	if containsAny(urlLower, alertURLHints) {
		alert += 3
	}
	if containsAny(sourceLower, alertSourceHints) {
		alert += 2
	}

	news += scoreTerms(text, newsKeywords, 2)
	news += scoreTerms(text, newsPhrases, 3)
	if containsAny(urlLower, newsURLHints) {
		news++
	}

	// Incident reporting that does not call attention to an attack type is
	// news, not an alert.
	if strings.Contains(text, "incident") || strings.Contains(text, "breach") {
		if !strings.Contains(text, "alert") && !strings.Contains(text, "advisory") && !strings.Contains(text, "threat") {
			news++
		}
	}
	// "research" mentioned while reporting on news is usually a news article
	// citing research, not a research publication.
	if strings.Contains(text, "research") && (strings.Contains(text, "news") || strings.Contains(text, "report")) {
		if !strings.Contains(text, "research paper") && !strings.Contains(text, "whitepaper") && !strings.Contains(text, "findings") {
			research--
			news++
		}
	}

	max := event
	for _, s := range []int{research, alert, news} {
		if s > max {
			max = s
		}
	}
	if max == 0 {
		return entity.ContentNews
	}
	// Ties resolve by specificity: Alert > Research > Event > News.
	switch max {
	case alert:
		return entity.ContentAlert
	case research:
		return entity.ContentResearch
	case event:
		return entity.ContentEvent
	default:
		return entity.ContentNews
	}
}

func scoreTerms(text string, terms []string, weight int) int {
	var total int
	for _, t := range terms {
		if strings.Contains(text, t) {
			total += weight
		}
	}
	return total
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
