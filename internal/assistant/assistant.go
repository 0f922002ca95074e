// Package assistant answers finance questions from a fixed keyword table.
// There is no model behind it: the first rule whose keyword appears in the
// question wins, and anything unmatched gets the help text.
package assistant

import "strings"

// Greeting is shown before the first question.
const Greeting = "Hi! I'm your AI financial assistant. I can help you track expenses, analyze spending patterns, provide budget recommendations, and answer questions about your finances. How can I help you today?"

// Help is returned when no rule matches.
const Help = "I can help you with:\n" +
	"• Expense analysis and categorization\n" +
	"• Budget recommendations and planning\n" +
	"• Savings goal tracking and optimization\n" +
	"• Income and debt management\n" +
	"• Net worth analysis\n" +
	"• Financial insights and trends\n\n" +
	"What specific area would you like to explore? You can ask questions like 'How much did I spend on food?' or 'Should I increase my savings rate?'"

// Rule maps any of its keywords to a fixed reply.
type Rule struct {
	Topic    string
	Keywords []string
	Reply    string
}

// Rules is evaluated in order.
var Rules = []Rule{
	{
		Topic:    "expenses",
		Keywords: []string{"expense", "spending"},
		Reply:    "Your total expenses this month are $5,230.80. Your largest expense category is Housing at $1,800 (34.4% of total expenses). Food & Dining follows at $650 (12.4%). Would you like me to analyze any specific category or suggest ways to optimize your spending?",
	},
	{
		Topic:    "budget",
		Keywords: []string{"budget", "recommendation"},
		Reply: "Based on your spending patterns, here are my recommendations:\n\n" +
			"• You're spending 62% of your income, which is healthy\n" +
			"• Consider increasing emergency fund contributions by $200/month\n" +
			"• Your housing costs are well within the 30% rule\n" +
			"• Entertainment spending has increased 15% - consider setting a monthly limit\n\n" +
			"Would you like a detailed budget plan?",
	},
	{
		Topic:    "savings",
		Keywords: []string{"savings", "goal"},
		Reply: "Great question about savings! You're currently 68% towards your $50,000 savings goal with $34,000 saved. At your current savings rate of $3,219/month, you'll reach your goal in approximately 5 months.\n\n" +
			"Tips to accelerate:\n" +
			"• Reduce dining out by $100/month\n" +
			"• Consider a high-yield savings account\n" +
			"• Set up automatic transfers on payday",
	},
	{
		Topic:    "income",
		Keywords: []string{"income"},
		Reply: "Your monthly income is $8,450, showing a healthy 12.5% increase from last month. This includes:\n" +
			"• Primary salary: $7,500\n" +
			"• Side income: $650\n" +
			"• Investment returns: $300\n\n" +
			"Your income growth is trending positively. Would you like suggestions on optimizing your additional income streams?",
	},
	{
		Topic:    "debt",
		Keywords: []string{"debt", "loan"},
		Reply: "Currently tracking $1,200 in credit card debt. Based on your payment history:\n" +
			"• Minimum payment: $35/month\n" +
			"• Recommended payment: $200/month\n" +
			"• Payoff timeline at current rate: 6 months\n\n" +
			"I recommend paying more than the minimum to save on interest. Would you like a debt payoff strategy?",
	},
	{
		Topic:    "net_worth",
		Keywords: []string{"net worth"},
		Reply: "Your net worth is $142,350.25, up 8.1% from last month! This includes:\n" +
			"• Assets: $165,550 (cash, investments, property)\n" +
			"• Liabilities: $23,200 (loans, credit cards)\n\n" +
			"Your net worth has grown consistently over the past 7 months. The trend shows excellent financial health!",
	},
}

// Match returns the first rule triggered by question.
func Match(question string) (Rule, bool) {
	q := strings.ToLower(question)
	for _, r := range Rules {
		for _, k := range r.Keywords {
			if strings.Contains(q, k) {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// Reply answers question, falling back to Help.
func Reply(question string) string {
	if r, ok := Match(question); ok {
		return r.Reply
	}
	return Help
}
