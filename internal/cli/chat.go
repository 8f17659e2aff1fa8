// internal/cli/chat.go
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"marketscout/internal/chat"
	"marketscout/internal/models"
	"marketscout/internal/render"
	"marketscout/internal/session"
)

var chatResumeSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts an interactive chat. Research mode answers questions like
"pharmacy in Pune"; csv mode answers questions about an uploaded file.

Commands inside the chat:
  /backend research|csv   switch backend
  /upload <file>          upload a CSV (csv mode)
  /quit                   leave the chat`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatResumeSession, "session", "", "resume a stored chat session by id")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	var resumed *models.ChatSession
	if chatResumeSession != "" {
		loaded, err := store.Load(cmd.Context(), chatResumeSession)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return fmt.Errorf("no stored session %q", chatResumeSession)
			}
			return err
		}
		resumed = loaded
	}

	svc := chat.New(researchClient, csvClient, store, log, obs, resumed)
	state := svc.State()

	cmd.Printf("Session %s (backend: %s). Type /quit to leave.\n", state.Session.ID, state.Session.Backend)
	for _, msg := range state.Session.Messages {
		printMessage(cmd, msg)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cmd.Print("you> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := handleChatCommand(cmd, svc, line); quit {
				break
			}
			continue
		}

		reply, err := svc.Turn(cmd.Context(), line)
		if err != nil {
			cmd.Println(render.Error(err.Error()))
			continue
		}
		printMessage(cmd, reply)
	}

	return scanner.Err()
}

// handleChatCommand processes a /-prefixed line; true means leave the loop.
func handleChatCommand(cmd *cobra.Command, svc *chat.Service, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/backend":
		if len(fields) != 2 {
			cmd.Println("usage: /backend research|csv")
			return false
		}
		switch fields[1] {
		case "research":
			svc.SwitchBackend(models.BackendResearch)
		case "csv":
			svc.SwitchBackend(models.BackendCSV)
		default:
			cmd.Println("usage: /backend research|csv")
			return false
		}
		cmd.Printf("Switched to %s backend.\n", fields[1])

	case "/upload":
		if len(fields) != 2 {
			cmd.Println("usage: /upload <file>")
			return false
		}
		f, err := os.Open(fields[1])
		if err != nil {
			cmd.Println(render.Error(err.Error()))
			return false
		}
		defer f.Close()

		reply, err := svc.UploadCSV(cmd.Context(), filepath.Base(fields[1]), f)
		if err != nil {
			cmd.Println(render.Error(err.Error()))
			return false
		}
		if reply.Error == "" {
			svc.SwitchBackend(models.BackendCSV)
		}
		printMessage(cmd, reply)

	default:
		cmd.Printf("unknown command %s\n", fields[0])
	}
	return false
}

func printMessage(cmd *cobra.Command, msg models.Message) {
	switch {
	case msg.Role == models.RoleUser:
		cmd.Printf("you> %s\n", msg.Text)

	case msg.Error != "":
		cmd.Println(render.Error(msg.Error))

	case msg.Payload != nil && msg.Backend == models.BackendCSV:
		if _, hasAnswer := msg.Payload["parsed"]; hasAnswer {
			cmd.Println(render.CSVAnswer(msg.Payload))
		} else {
			cmd.Println(render.CSVAnalysis(msg.Payload))
		}

	case msg.Payload != nil:
		if msg.Text != "" {
			cmd.Println(msg.Text)
		}
		cmd.Println(render.Research(msg.Payload))

	default:
		cmd.Println(msg.Text)
	}
}
