// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"slices"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/alef-phonics-bot/internal/service"
)

// Notices.
const (
	msgLoading           = "🌳 היער מתכונן... כבר מתחילים!"
	msgNoContent         = "😕 לא הצלחנו להכין שאלות הפעם. נסו שוב!"
	msgRoundInProgress   = "כבר באמצע משחק! הנה השאלה הנוכחית:"
	msgLoadingInProgress = "השאלות בדרך, רגע אחד..."
	msgQuestionExpired   = "השאלה הזאת כבר לא פעילה"
	msgUnknownCategory   = "אין משחק כזה. בחרו הרפתקה מהרשימה:"
	msgUseButtons        = "בחרו תשובה בעזרת הכפתורים 👇"
	msgStatsUnavailable  = "לא הצלחנו לטעון את ההיסטוריה. נסו שוב מאוחר יותר."
	msgResetConfirm      = "למחוק את כל היסטוריית המשחקים? אי אפשר לבטל את זה."
	msgResetDone         = "🧹 ההיסטוריה נמחקה."
	msgResetCancelled    = "👌 לא נמחק כלום."
	msgInternalError     = "משהו השתבש. נסו שוב מאוחר יותר."
	msgUnknownCommand    = "פקודה לא מוכרת. /help תציג את כל הפקודות."
	msgPrivateOnly       = "משחקים איתי בצ'אט פרטי 🙂"
)

const (
	rlm             = "\u200F"
	progressBarSize = 10
)

// categoryView is how a category is shown in the lobby.
type categoryView struct {
	Title       string
	Description string
	Icon        string
}

var categoryViews = map[entities.Category]categoryView{
	entities.CategorySyllableCount: {Title: "כמה הברות?", Description: "נמחה כפיים ונחלק את המילים", Icon: "🥁"},
	entities.CategoryInitialSound:  {Title: "מה הצליל הפותח?", Description: "נגלה באיזה צליל מתחילה המילה", Icon: "👂"},
	entities.CategoryRhymeMatch:    {Title: "מי מתחרז?", Description: "נמצא זוגות של מילים דומות", Icon: "🎶"},
}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

func categoryTitle(c entities.Category) string {
	v, ok := categoryViews[c]
	if !ok {
		return c.String()
	}
	return v.Icon + " " + v.Title
}

// formatLobby builds the home screen (MarkdownV2 safe).
func formatLobby(score int, completed []entities.Category) string {
	var sb strings.Builder

	sb.WriteString(bold("🌲 יער הצלילים"))
	sb.WriteString("\n\n")
	sb.WriteString(bold("שלום כיתה א'!"))
	sb.WriteString("\n")
	sb.WriteString(md("בחרו הרפתקה והתחילו לשחק"))
	sb.WriteString("\n\n")

	for _, c := range entities.Categories() {
		v := categoryViews[c]
		sb.WriteString(md(rlm + v.Icon + " "))
		sb.WriteString(bold(v.Title))
		sb.WriteString(md(" " + v.Description))
		if slices.Contains(completed, c) {
			sb.WriteString(md(" ✅"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("%s⭐ %d נקודות", rlm, score)))

	return sb.String()
}

// formatQuestion formats a question caption (MarkdownV2 safe).
func formatQuestion(q entities.Question, current, total int) string {
	return fmt.Sprintf(
		"%s\n%s\n\n%s\n%s",
		md(fmt.Sprintf("%sשאלה %d מתוך %d", rlm, current, total)),
		md(buildProgressBar(current-1, total, progressBarSize)),
		bold(q.Word),
		md(q.Instruction),
	)
}

// formatAnswerFeedback formats the toast shown after an answer. Plain text.
func formatAnswerFeedback(res service.AnswerResult) string {
	if res.Correct {
		return fmt.Sprintf("✅ נכון! +%d", res.PointsAwarded)
	}
	return fmt.Sprintf("❌ התשובה הנכונה: %s", res.CorrectAnswer)
}

// formatCompletion formats the end-of-round screen (MarkdownV2 safe).
func formatCompletion(c entities.Completion) string {
	emoji := "🌱"
	switch {
	case c.Correct == c.Total:
		emoji = "🏆"
	case c.Correct*2 >= c.Total:
		emoji = "🌟"
	}

	return fmt.Sprintf(
		"%s\n%s\n\n%s\n%s\n%s\n\n%s",
		bold(emoji+" כל הכבוד!"),
		md("סיימת את ההרפתקה בהצלחה"),
		md(fmt.Sprintf("%s%s: %d/%d", rlm, categoryTitle(c.Category), c.Correct, c.Total)),
		md(buildProgressBar(c.Correct, c.Total, progressBarSize)),
		bold(fmt.Sprintf("+%d נקודות!", c.RoundPoints)),
		md(fmt.Sprintf("%s⭐ סה\"כ: %d נקודות", rlm, c.TotalScore)),
	)
}

// formatScore formats the session score (MarkdownV2 safe).
func formatScore(score int, completed []entities.Category) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("⭐ %d נקודות", score)))
	sb.WriteString("\n\n")

	if len(completed) == 0 {
		sb.WriteString(md("עוד לא סיימתם אף הרפתקה."))
		return sb.String()
	}

	sb.WriteString(md("הרפתקאות שסיימתם:"))
	for _, c := range completed {
		sb.WriteString("\n")
		sb.WriteString(md(rlm + "✅ " + categoryTitle(c)))
	}

	return sb.String()
}

// formatStats formats the persisted round history (MarkdownV2 safe).
func formatStats(stats *service.PlayerStats) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 ההיסטוריה שלי"))
	sb.WriteString("\n\n")

	if stats.RoundsPlayed == 0 {
		sb.WriteString(md("עוד לא שיחקתם. בחרו הרפתקה!"))
		return sb.String()
	}

	for _, cs := range stats.Categories {
		sb.WriteString(bold(categoryTitle(cs.Category)))
		sb.WriteString("\n")
		if cs.RoundsPlayed == 0 {
			sb.WriteString(md("עוד לא שיחקתם"))
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(md(fmt.Sprintf("%sמשחקים: %d · שיא: %d · סה\"כ: %d", rlm, cs.RoundsPlayed, cs.BestPoints, cs.TotalPoints)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(md(fmt.Sprintf("%sסה\"כ %d משחקים, %d נקודות", rlm, stats.RoundsPlayed, stats.TotalPoints)))

	return sb.String()
}

// helpText lists the bot commands (MarkdownV2 safe).
func helpText() string {
	lines := []string{
		"/start — מסך הבית",
		"/play — בחירת הרפתקה",
		"/home — חזרה למסך הבית",
		"/score — הנקודות שלי",
		"/stats — ההיסטוריה שלי",
		"/reset — מחיקת ההיסטוריה",
		"/help — עזרה",
	}

	return bold("איך משחקים?") + "\n\n" +
		md("בוחרים הרפתקה, מסתכלים על התמונה ולוחצים על התשובה הנכונה. כל תשובה נכונה שווה 10 נקודות.") +
		"\n\n" + md(strings.Join(lines, "\n"))
}

// buildProgressBar creates a text progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return strings.Repeat("░", length)
	}

	filled := current * length / total
	filled = max(0, min(filled, length))

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}
