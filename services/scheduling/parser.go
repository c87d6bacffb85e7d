package scheduling

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser resolves free-text day/time expressions ("next Friday 2pm",
// "March 15th", "tomorrow") into absolute instants. Rules are evaluated
// in a fixed precedence order; the first match wins. Any result that is
// not strictly after the reference instant is rejected so callers never
// receive a slot in the past.
type Parser struct {
	loc   *time.Location
	rules []parseRule
}

// parseRule is one pattern matcher. Each rule is pure: given the
// normalized text, the reference instant, and the extracted time-of-day,
// it either resolves an instant or reports no match.
type parseRule func(s string, now time.Time, tod clockTime) (time.Time, bool)

type clockTime struct {
	hour   int
	minute int
}

var (
	timeTokenRe = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	todayRe     = regexp.MustCompile(`\b(today|tonight)\b`)
	tomorrowRe  = regexp.MustCompile(`\btomorrow\b`)
	nextYearRe  = regexp.MustCompile(`\bnext\s+year\b`)

	weekdayPattern = `sun(?:day)?|mon(?:day)?|tue(?:s|sday)?|wed(?:nesday)?|thu(?:r|rs|rsday)?|fri(?:day)?|sat(?:urday)?`
	monthPattern   = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

	nextWeekdayRe = regexp.MustCompile(`\bnext\s+(?:week\s+)?(` + weekdayPattern + `)\b`)
	bareWeekdayRe = regexp.MustCompile(`\b(` + weekdayPattern + `)\b`)
	monthDayRe    = regexp.MustCompile(`\b(` + monthPattern + `)\s+(\d{1,2})(?:st|nd|rd|th)?(?:\s*,?\s*(\d{4}))?\b`)
	dayOfMonthRe  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+of\s+(` + monthPattern + `)(?:\s*,?\s*(\d{4}))?\b`)
	slashDateRe   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// NewParser builds a parser that interprets clock-wall times in loc.
func NewParser(loc *time.Location) *Parser {
	p := &Parser{loc: loc}
	p.rules = []parseRule{
		p.matchToday,
		p.matchTomorrow,
		p.matchNextWeekday,
		p.matchMonthDay,
		p.matchDayOfMonth,
		p.matchSlashDate,
		p.matchBareWeekday,
	}
	return p
}

// Parse resolves text against the reference instant. The boolean is false
// when the expression is unparseable or resolves to a past instant.
func (p *Parser) Parse(text string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return time.Time{}, false
	}

	tod, ok := extractTimeOfDay(s)
	if !ok {
		return time.Time{}, false
	}

	for _, rule := range p.rules {
		if resolved, matched := rule(s, now, tod); matched {
			if !resolved.After(now) {
				return time.Time{}, false
			}
			return resolved, true
		}
	}
	return time.Time{}, false
}

// extractTimeOfDay pulls an optional 12-hour "H[:MM] am|pm" token out of
// the text, defaulting to 9:00. A present but invalid token fails the
// whole expression.
func extractTimeOfDay(s string) (clockTime, bool) {
	tod := clockTime{hour: 9, minute: 0}
	m := timeTokenRe.FindStringSubmatch(s)
	if m == nil {
		return tod, true
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return clockTime{}, false
	}
	if m[3] == "pm" && hour != 12 {
		hour += 12
	}
	if m[3] == "am" && hour == 12 {
		hour = 0
	}
	return clockTime{hour: hour, minute: minute}, true
}

// at composes a local calendar day with the time-of-day in the parser's
// timezone.
func (p *Parser) at(year int, month time.Month, day int, tod clockTime) time.Time {
	return time.Date(year, month, day, tod.hour, tod.minute, 0, 0, p.loc)
}

func (p *Parser) matchToday(s string, now time.Time, tod clockTime) (time.Time, bool) {
	if !todayRe.MatchString(s) {
		return time.Time{}, false
	}
	local := now.In(p.loc)
	return p.at(local.Year(), local.Month(), local.Day(), tod), true
}

func (p *Parser) matchTomorrow(s string, now time.Time, tod clockTime) (time.Time, bool) {
	if !tomorrowRe.MatchString(s) {
		return time.Time{}, false
	}
	local := now.In(p.loc).AddDate(0, 0, 1)
	return p.at(local.Year(), local.Month(), local.Day(), tod), true
}

// matchNextWeekday resolves "next Monday" / "next week Monday" to the
// following week's occurrence: a zero-day offset is forced to seven, so
// "next Monday" spoken on a Monday is never today.
func (p *Parser) matchNextWeekday(s string, now time.Time, tod clockTime) (time.Time, bool) {
	m := nextWeekdayRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	wd, ok := weekdayNames[m[1]]
	if !ok {
		return time.Time{}, false
	}
	local := now.In(p.loc)
	daysUntil := (int(wd) - int(local.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	target := local.AddDate(0, 0, daysUntil)
	return p.at(target.Year(), target.Month(), target.Day(), tod), true
}

func (p *Parser) matchMonthDay(s string, now time.Time, tod clockTime) (time.Time, bool) {
	m := monthDayRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month := monthNames[m[1]]
	day, _ := strconv.Atoi(m[2])
	return p.resolveAbsoluteDate(now, month, day, m[3], nextYearRe.MatchString(s), tod)
}

func (p *Parser) matchDayOfMonth(s string, now time.Time, tod clockTime) (time.Time, bool) {
	m := dayOfMonthRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month := monthNames[m[2]]
	return p.resolveAbsoluteDate(now, month, day, m[3], nextYearRe.MatchString(s), tod)
}

func (p *Parser) matchSlashDate(s string, now time.Time, tod clockTime) (time.Time, bool) {
	m := slashDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	monthNum, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if monthNum < 1 || monthNum > 12 {
		return time.Time{}, false
	}
	yearStr := m[3]
	if yearStr != "" {
		y, _ := strconv.Atoi(yearStr)
		// 2-digit years read as 2000+yy.
		if y < 100 {
			y += 2000
		}
		yearStr = strconv.Itoa(y)
	}
	return p.resolveAbsoluteDate(now, time.Month(monthNum), day, yearStr, nextYearRe.MatchString(s), tod)
}

func (p *Parser) matchBareWeekday(s string, now time.Time, tod clockTime) (time.Time, bool) {
	m := bareWeekdayRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	wd, ok := weekdayNames[m[1]]
	if !ok {
		return time.Time{}, false
	}
	local := now.In(p.loc)
	daysUntil := (int(wd) - int(local.Weekday()) + 7) % 7
	target := local.AddDate(0, 0, daysUntil)
	candidate := p.at(target.Year(), target.Month(), target.Day(), tod)
	// Closest future occurrence: roll forward one week when the computed
	// instant has already passed.
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate, true
}

// resolveAbsoluteDate applies the shared year rules for month/day dates:
// a "next year" modifier bumps the default year; a date without an
// explicit year that falls on or before now rolls forward to the next
// annual occurrence. An explicit year is taken literally and never rolled.
func (p *Parser) resolveAbsoluteDate(now time.Time, month time.Month, day int, explicitYear string, nextYear bool, tod clockTime) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	if explicitYear != "" {
		year, _ := strconv.Atoi(explicitYear)
		return p.at(year, month, day, tod), true
	}
	year := now.In(p.loc).Year()
	if nextYear {
		year++
	}
	d := p.at(year, month, day, tod)
	if !d.After(now) {
		d = p.at(year+1, month, day, tod)
	}
	return d, true
}
