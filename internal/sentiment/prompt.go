package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/guttosm/smartinvest/internal/domain/models"
)

// maxInputRunes bounds the article text sent to a model.
const maxInputRunes = 500

const promptTemplate = `Analyze the financial sentiment of this news article about a stock/company.

Article: "%s"

Rate the sentiment on a scale from -1.0 to 1.0 where:
- -1.0 = Very negative (likely to hurt stock price)
- -0.5 = Negative (bearish sentiment)
- 0.0 = Neutral (no clear impact)
- 0.5 = Positive (bullish sentiment)
- 1.0 = Very positive (likely to boost stock price)

Consider factors like:
- Financial performance mentions
- Market outlook
- Company strategy
- Regulatory news
- Economic indicators

Respond with only the numerical sentiment score (e.g., 0.7, -0.3, 0.0):`

var numberPattern = regexp.MustCompile(`-?\d*\.?\d+`)

// ArticleText is "title. description" cut to the first 500 characters.
func ArticleText(a models.NewsArticle) string {
	text := a.Title + ". " + a.Description
	if r := []rune(text); len(r) > maxInputRunes {
		text = string(r[:maxInputRunes])
	}
	return text
}

// BuildPrompt renders the rating prompt for one article.
func BuildPrompt(a models.NewsArticle) string {
	return fmt.Sprintf(promptTemplate, ArticleText(a))
}

// ParseScore reads the first number of a model reply and clamps it to [-1, 1].
// Replies without a number score 0.
func ParseScore(reply string) float64 {
	m := numberPattern.FindString(strings.TrimSpace(reply))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
