package resume

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"crisp-interview/internal/models"
)

// Field extraction is a pipeline of independent best-effort passes over the
// normalized text. Every pass may come back empty; absence is never an error.

const (
	maxSkills       = 15
	maxTechnologies = 10
	maxEducation    = 5
	maxProjects     = 5
	maxExperience   = 5
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}|\+?\d{10,15}`)

	labeledNameRe  = regexp.MustCompile(`(?im)(?:name|full name):\s*(.+)$`)
	standaloneName = regexp.MustCompile(`(?m)^([A-Z][a-z]+ [A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*$`)
	phoneLikeRe    = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)
	nameWordRe     = regexp.MustCompile(`^[A-Z][a-z']+$`)
	mixedCaseRe    = regexp.MustCompile(`^[A-Z][a-z]*[A-Z][a-z]*$`)
	nonNameCharRe  = regexp.MustCompile(`[^\w\s]`)
	spacesRe       = regexp.MustCompile(`\s+`)
	headerColonRe  = regexp.MustCompile(`^[A-Z][a-z]+\s*:`)

	techContextRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:technologies?|tools?|frameworks?|libraries|platforms?)[\s:]+([^.]*)`),
		regexp.MustCompile(`(?i)(?:worked with|experience with|proficient in)[\s:]+([^.]*)`),
	}
	techCleanRe = regexp.MustCompile(`[^\w\s.\-]`)

	yearsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`(?i)experience[:\s]*(\d+)\+?\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*in\s*(?:software|development|programming)`),
	}
	yearRangeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(\d{4}|present|current)`),
		regexp.MustCompile(`(?i)([A-Za-z]+\s+\d{4})\s*[-–]\s*([A-Za-z]+\s+\d{4}|present|current)`),
	}

	skillPatterns     = compileKeywordPatterns(skillKeywords)
	educationPatterns = compileKeywordPatterns(educationKeywords)
)

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp
}

// compileKeywordPatterns builds case-insensitive whole-word matchers. Word
// boundaries are only applied next to word characters so keywords like "C++"
// and "CI/CD" stay matchable.
func compileKeywordPatterns(keywords []string) []keywordPattern {
	out := make([]keywordPattern, 0, len(keywords))
	for _, kw := range keywords {
		pat := "(?i)"
		if isWordByte(kw[0]) {
			pat += `\b`
		}
		pat += regexp.QuoteMeta(kw)
		if isWordByte(kw[len(kw)-1]) {
			pat += `\b`
		}
		out = append(out, keywordPattern{keyword: kw, re: regexp.MustCompile(pat)})
	}
	return out
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// ExtractFields runs every heuristic pass over the raw résumé text.
func ExtractFields(text string) models.ParsedFields {
	text = normalizeText(text)
	lines := nonEmptyLines(text)

	return models.ParsedFields{
		Name:              extractName(text, lines),
		Email:             extractEmail(text),
		Phone:             extractPhone(text),
		Skills:            extractSkills(text, lines),
		Technologies:      extractTechnologies(text),
		Experience:        extractExperience(lines),
		Education:         extractEducation(lines),
		Summary:           extractSummary(text, lines),
		YearsOfExperience: extractYearsOfExperience(text),
		Projects:          extractProjects(lines),
	}
}

// normalizeText collapses horizontal whitespace within each line while
// preserving line structure for the line-oriented passes.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func extractEmail(text string) string {
	return emailRe.FindString(text)
}

// extractPhone returns the first phone-like match, digits-normalized with a
// leading country-code "1" stripped and formatted as (NNN) NNN-NNNN when
// exactly ten digits remain.
func extractPhone(text string) string {
	match := phoneRe.FindString(text)
	if match == "" {
		return ""
	}
	var digits strings.Builder
	for _, r := range match {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	normalized := strings.TrimPrefix(digits.String(), "1")
	if len(normalized) == 10 {
		return "(" + normalized[:3] + ") " + normalized[3:6] + "-" + normalized[6:]
	}
	return normalized
}

func extractName(text string, lines []string) string {
	// Explicitly labeled "Name:" fields take priority.
	if m := labeledNameRe.FindStringSubmatch(text); m != nil {
		if name := cleanName(m[1]); len(name) >= 4 {
			return name
		}
	}
	// A standalone capitalized line is only trusted when it does not look
	// like a section header.
	if m := standaloneName.FindStringSubmatch(text); m != nil && isLikelyName(m[1]) {
		if name := cleanName(m[1]); len(name) >= 4 {
			return name
		}
	}

	// Otherwise scan the top of the document for a name-shaped line.
	limit := len(lines)
	if limit > 8 {
		limit = 8
	}
	for _, line := range lines[:limit] {
		if len(line) < 4 {
			continue
		}
		if isLikelyName(line) {
			return cleanName(line)
		}
	}
	return ""
}

func isLikelyName(line string) bool {
	lower := strings.ToLower(line)
	for _, skip := range nameSkipWords {
		if strings.Contains(lower, skip) {
			return false
		}
	}
	if strings.Contains(line, "@") || phoneLikeRe.MatchString(line) {
		return false
	}

	var words []string
	for _, w := range strings.Fields(line) {
		if len(w) > 1 {
			words = append(words, w)
		}
	}
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if len(w) < 2 || len(w) > 25 {
			return false
		}
		if !nameWordRe.MatchString(w) && !mixedCaseRe.MatchString(w) {
			return false
		}
	}
	return true
}

func cleanName(name string) string {
	name = nonNameCharRe.ReplaceAllString(name, "")
	return strings.TrimSpace(spacesRe.ReplaceAllString(name, " "))
}

// extractSkills prefers matches inside a dedicated skills section and falls
// back to a whole-document vocabulary scan.
func extractSkills(text string, lines []string) []string {
	var fromSection []string
	for i, line := range lines {
		lower := strings.ToLower(line)
		sectionHit := false
		for _, section := range skillSections {
			if strings.Contains(lower, section) {
				sectionHit = true
				break
			}
		}
		if !sectionHit {
			continue
		}
		end := i + 10
		if end > len(lines) {
			end = len(lines)
		}
		for _, skillLine := range lines[i+1 : end] {
			if len(skillLine) < 5 || headerColonRe.MatchString(skillLine) {
				break
			}
			for _, kp := range skillPatterns {
				if kp.re.MatchString(skillLine) {
					fromSection = append(fromSection, kp.keyword)
				}
			}
		}
		break
	}

	found := fromSection
	if len(found) == 0 {
		for _, kp := range skillPatterns {
			if kp.re.MatchString(text) {
				found = append(found, kp.keyword)
			}
		}
	}
	return dedupeCap(found, maxSkills)
}

func extractTechnologies(text string) []string {
	var technologies []string
	for _, re := range techContextRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, t := range strings.FieldsFunc(m[1], func(r rune) bool {
				return r == ',' || r == ';' || r == '|' || r == '&'
			}) {
				t = strings.TrimSpace(techCleanRe.ReplaceAllString(t, ""))
				if len(t) > 2 && len(t) < 30 {
					technologies = append(technologies, t)
				}
			}
		}
	}
	return dedupeCap(technologies, maxTechnologies)
}

func extractEducation(lines []string) []string {
	var education []string
	for i, line := range lines {
		matched := false
		for _, kp := range educationPatterns {
			if kp.re.MatchString(line) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		education = append(education, line)
		// The following line often carries the institution or dates.
		if i+1 < len(lines) && !headerColonRe.MatchString(lines[i+1]) {
			education = append(education, lines[i+1])
		}
	}
	return dedupeCap(education, maxEducation)
}

func extractSummary(text string, lines []string) string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		hit := false
		for _, kw := range summaryKeywords {
			if strings.Contains(lower, kw) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		var collected []string
		end := i + 8
		if end > len(lines) {
			end = len(lines)
		}
		for _, l := range lines[i+1 : end] {
			if len(l) < 10 || headerColonRe.MatchString(l) {
				break
			}
			collected = append(collected, l)
		}
		summary := truncateRunes(strings.TrimSpace(strings.Join(collected, " ")), 300)
		if len(summary) > 20 {
			return summary
		}
		return ""
	}

	// No heading: accept the first paragraph when its length is plausible
	// for a summary.
	first := strings.SplitN(text, "\n\n", 2)[0]
	if len(first) > 50 && len(first) < 400 {
		return strings.TrimSpace(first)
	}
	return ""
}

// truncateRunes cuts s to at most limit bytes without splitting a rune.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func extractYearsOfExperience(text string) float64 {
	for _, re := range yearsRes {
		if m := re.FindStringSubmatch(text); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil && years >= 0 && years <= 50 {
				return float64(years)
			}
		}
	}

	// Fall back to summing employment date ranges.
	total := 0.0
	for _, r := range extractDateRanges(text) {
		total += r.years
	}
	if total > 0 {
		return float64(int(total*10+0.5)) / 10
	}
	return 0
}

func extractProjects(lines []string) []string {
	var projects []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "project") && len(line) > 10 && len(line) < 200 {
			projects = append(projects, line)
			continue
		}
		for _, kw := range projectKeywords {
			if strings.Contains(lower, kw) && strings.Contains(lower, "develop") {
				projects = append(projects, line)
				break
			}
		}
	}
	return dedupeCap(projects, maxProjects)
}

// extractExperience picks lines carrying an employment date range along with
// their surrounding context.
func extractExperience(lines []string) []string {
	var experiences []string
	for i, line := range lines {
		ranged := false
		for _, re := range yearRangeRes {
			if re.MatchString(line) {
				ranged = true
				break
			}
		}
		if !ranged {
			continue
		}
		var context []string
		for j := i - 1; j <= i+1; j++ {
			if j < 0 || j >= len(lines) {
				continue
			}
			if l := lines[j]; len(l) > 5 {
				context = append(context, l)
			}
		}
		snippet := strings.Join(context, " | ")
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		if snippet != "" {
			experiences = append(experiences, snippet)
		}
	}
	return dedupeCap(experiences, maxExperience)
}

type dateRange struct {
	start, end time.Time
	years      float64
}

func extractDateRanges(text string) []dateRange {
	now := time.Now()
	var ranges []dateRange
	for _, re := range yearRangeRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			start, ok := parseRangeDate(m[1], false, now)
			if !ok {
				continue
			}
			end, ok := parseRangeDate(m[2], true, now)
			if !ok {
				continue
			}
			if start.Before(end) {
				ranges = append(ranges, dateRange{
					start: start,
					end:   end,
					years: end.Sub(start).Hours() / 24 / 365.25,
				})
			}
		}
	}
	return ranges
}

// parseRangeDate accepts a bare year or "Month Year". "present"/"current" map
// to now for range ends. Bare years anchor to January for starts and December
// for ends so "2019-2021" counts the full span.
func parseRangeDate(s string, isEnd bool, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.Contains(lower, "present") || strings.Contains(lower, "current") {
		return now, true
	}
	if year, err := strconv.Atoi(s); err == nil {
		month := time.January
		if isEnd {
			month = time.December
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range []string{"January 2006", "Jan 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dedupeCap(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
