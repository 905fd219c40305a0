package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"support-assistant-be/internal/bootstrap"
	"support-assistant-be/internal/config"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/assistant/conversation"
	"support-assistant-be/pkg/assistant/router"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Resolver answers one message; *router.Router satisfies it
type Resolver interface {
	Resolve(ctx context.Context, req router.Request) *router.Result
}

type chatSession struct {
	resolver Resolver
	category conversation.Category
	history  []conversation.Message
	timeout  time.Duration
	maxTurns int
}

func newChatCommand() *cobra.Command {
	var (
		category   string
		message    string
		document   string
		timeoutSec int
	)

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the assistant in this terminal",
		Long:  "Resolves messages in-process with the configured knowledge base, status registry and LLM provider. Type /category <name> to switch topic, /reset to clear history and /exit to quit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if document != "" {
				cfg.Knowledge.DocumentPath = document
			}

			sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
			defer sysLogger.Sync()
			llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)
			defer llmLogger.Sync()

			session := &chatSession{
				resolver: bootstrap.NewAssistant(cfg, sysLogger, llmLogger).Router,
				category: conversation.ParseCategory(category),
				timeout:  boundedTimeout(timeoutSec),
				maxTurns: cfg.Conversation.MaxMessages,
			}

			text := strings.TrimSpace(message)
			if text == "" && len(args) > 0 {
				text = strings.TrimSpace(strings.Join(args, " "))
			}
			if text != "" {
				session.send(cmd.OutOrStdout(), text)
				return nil
			}

			color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "Support assistant (category: %s). Type /exit to quit.\n", session.category)
			return session.run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "topic hint: navigation, service or status")
	cmd.Flags().StringVarP(&message, "message", "m", "", "single message to send (non-interactive mode)")
	cmd.Flags().StringVar(&document, "document", "", "reference document to answer from")
	cmd.Flags().IntVar(&timeoutSec, "timeout-sec", 60, "resolution timeout in seconds")
	return cmd
}

func (s *chatSession) run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	prompt := color.New(color.FgYellow)

	for {
		prompt.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		switch {
		case text == "/exit" || text == "/quit":
			return nil
		case text == "/reset":
			s.history = nil
			color.New(color.FgCyan).Fprintln(out, "history cleared")
			continue
		case strings.HasPrefix(text, "/category"):
			s.category = conversation.ParseCategory(strings.TrimSpace(strings.TrimPrefix(text, "/category")))
			color.New(color.FgCyan).Fprintf(out, "category: %s\n", s.category)
			continue
		}

		s.send(out, text)
	}

	return scanner.Err()
}

func (s *chatSession) send(out io.Writer, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result := s.resolver.Resolve(ctx, router.Request{
		Message:  text,
		History:  s.history,
		Category: s.category,
	})

	s.history = append(s.history, conversation.UserMessage(text), conversation.BotMessage(result.Reply))
	if s.maxTurns > 0 && len(s.history) > s.maxTurns {
		s.history = s.history[len(s.history)-s.maxTurns:]
	}

	printReply(out, result)
}

func printReply(out io.Writer, result *router.Result) {
	tag := color.New(color.FgMagenta).Sprintf("[%s]", result.Strategy)
	lines := strings.Split(result.Reply, "\n")
	for index, line := range lines {
		line = strings.TrimRight(line, "\r")
		if index == 0 {
			color.New(color.FgGreen).Fprintf(out, "bot> ")
			io.WriteString(out, line+" "+tag+"\n")
			continue
		}
		io.WriteString(out, "     "+line+"\n")
	}
}

func boundedTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 60 * time.Second
	}
	if seconds > 600 {
		seconds = 600
	}
	return time.Duration(seconds) * time.Second
}
