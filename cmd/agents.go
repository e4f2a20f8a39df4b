package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meysamhadeli/solid/constants/lipgloss"
	"github.com/meysamhadeli/solid/utils"
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Talk to the company's AI agents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		session, err := rootDependencies.Session()
		if err != nil {
			return err
		}

		stop := rootDependencies.startSpinner("Loading agents...")
		agents, err := rootDependencies.Client(session).ListAgents(cmd.Context())
		stop()
		if err != nil {
			return err
		}

		table := utils.Table{Header: []string{"ID", "NAME", "STATUS", "DESCRIPTION"}}
		for _, agent := range agents {
			table.Rows = append(table.Rows, []string{
				strconv.FormatInt(agent.ID, 10),
				agent.Name,
				agent.Status,
				excerpt(agent.Description, 60),
			})
		}
		return rootDependencies.Render(agents, table)
	},
}

var agentsChatCmd = &cobra.Command{
	Use:   "chat <agent-id> <message...>",
	Short: "Send one message to an agent",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		agentID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || agentID <= 0 {
			return fmt.Errorf("agent id must be a positive integer, got %q", args[0])
		}

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		session, err := rootDependencies.Session()
		if err != nil {
			return err
		}

		stop := rootDependencies.startSpinner("Agent is thinking...")
		reply, err := rootDependencies.Client(session).ChatWithAgent(cmd.Context(), agentID, strings.Join(args[1:], " "))
		stop()
		if err != nil {
			return err
		}

		if rootDependencies.StructuredOutput() {
			return rootDependencies.Render(reply, utils.Table{})
		}
		return utils.RenderMarkdown(cmd.Context(), rootDependencies.Out, reply.Response, rootDependencies.Config.Theme, rootDependencies.Color)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask a question about your company's data in plain language",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		session, err := rootDependencies.Session()
		if err != nil {
			return err
		}

		stop := rootDependencies.startSpinner("Thinking...")
		answer, err := rootDependencies.Client(session).Ask(cmd.Context(), strings.Join(args, " "))
		stop()
		if err != nil {
			return err
		}

		if rootDependencies.StructuredOutput() {
			return rootDependencies.Render(answer, utils.Table{})
		}
		if err := utils.RenderMarkdown(cmd.Context(), rootDependencies.Out, answer.Answer, rootDependencies.Config.Theme, rootDependencies.Color); err != nil {
			return err
		}
		if len(answer.Sources) > 0 {
			fmt.Fprintln(rootDependencies.Out, lipgloss.Gray.Render("Sources: "+strings.Join(answer.Sources, ", ")))
		}
		return nil
	},
}

func init() {
	agentsCmd.AddCommand(agentsListCmd)
	agentsCmd.AddCommand(agentsChatCmd)

	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(askCmd)
}
