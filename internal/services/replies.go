package services

import (
	"fmt"
	"hourbot/internal/models"
	"strconv"
	"strings"
)

const (
	replyUnavailable   = "⚠️ Error connecting to database. Please try again later."
	replyLogFailed     = "❌ Error logging hours. Please try again."
	replyResetFailed   = "❌ Error resetting. Please try again."
	replyFailure       = "❌ Something went wrong. Please try again."
	replyInvalidFormat = "❌ Invalid format. Use: log 2.5"
	replyReset         = "🔄 Hours reset to 0"
	replyNoHistory     = "📖 No sessions logged yet!"
	replyNoSheet       = "📊 No spreadsheet is connected to this bot."
)

const helpText = `📚 Learning Hours Tracker

Commands:
• log 2.5 - Log hours
• today - Hours logged today
• week - Hours this week
• total - View total hours
• stats - Today, week and total
• daily - Last 7 days
• history - Recent sessions
• sheet - View Google Sheet
• reset - Reset hours

Example: log 3`

// formatHours prints the shortest decimal that round-trips, without rounding.
func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOutOfRange(maxHours float64) string {
	if maxHours > 0 {
		return fmt.Sprintf("❌ Hours must be between 0 and %s. Use: log 2.5", formatHours(maxHours))
	}
	return "❌ Hours cannot be negative. Use: log 2.5"
}

func formatLogged(hours float64, s models.Summary) string {
	return fmt.Sprintf("✅ Logged %s hours!\n\n📅 Today: %sh\n📆 This week: %sh\n📊 Total: %sh",
		formatHours(hours), formatHours(s.Today), formatHours(s.Week), formatHours(s.Total))
}

func formatLoggedWithoutSummary(hours float64) string {
	return fmt.Sprintf("✅ Logged %s hours!\n\n📊 Totals are unavailable right now.", formatHours(hours))
}

func formatToday(v float64) string {
	return fmt.Sprintf("📅 Today: %sh", formatHours(v))
}

func formatWeek(v float64) string {
	return fmt.Sprintf("📆 This week: %sh", formatHours(v))
}

func formatTotal(v float64) string {
	return fmt.Sprintf("📚 Total learning hours: %sh", formatHours(v))
}

func formatStats(s models.Summary) string {
	return fmt.Sprintf("📊 Your stats\n\n📅 Today: %sh\n📆 This week: %sh\n📚 Total: %sh\n📝 Sessions: %d",
		formatHours(s.Today), formatHours(s.Week), formatHours(s.Total), s.Sessions)
}

func formatDaily(days []models.DayTotal) string {
	var b strings.Builder
	b.WriteString("🗓️ Last ")
	b.WriteString(strconv.Itoa(len(days)))
	b.WriteString(" days:")
	for _, d := range days {
		fmt.Fprintf(&b, "\n%s: %sh", d.Date.Format("Mon 01-02"), formatHours(d.Hours))
	}
	return b.String()
}

func formatHistory(recent []models.Entry, total float64) string {
	if len(recent) == 0 {
		return replyNoHistory
	}
	lines := make([]string, 0, len(recent))
	for _, e := range recent {
		date := "unknown date"
		if e.HasTimestamp() {
			date = models.FormatTimestamp(e.Timestamp)
		}
		lines = append(lines, fmt.Sprintf("%s: %sh", date, formatHours(e.Hours)))
	}
	return fmt.Sprintf("📖 Recent sessions:\n%s\n\n📊 Total: %sh", strings.Join(lines, "\n"), formatHours(total))
}

func formatSheet(url string) string {
	if url == "" {
		return replyNoSheet
	}
	return "📊 View your data:\n" + url
}
