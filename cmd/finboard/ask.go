package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"finboard/internal/assistant"
	"finboard/internal/log"
)

func askCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask the finance assistant a question",
		Long:  `Ask about expenses, budgets, savings, income, debt or net worth. Without a question the greeting is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, assistant.Greeting)
				return nil
			}
			q := strings.Join(args, " ")
			rule, ok := assistant.Match(q)
			topic := "help"
			if ok {
				topic = rule.Topic
			}
			a.logger.WithComponent(log.ComponentAssistant).Debug("Assistant reply", "topic", topic)
			fmt.Fprintln(out, assistant.Reply(q))
			return nil
		},
	}
}
