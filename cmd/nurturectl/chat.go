package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nurture/internal/activity"
	"nurture/internal/chat"
	chathandler "nurture/internal/chat/handler"
	"nurture/internal/evaluation"
)

func newChatCmd(opts *options) *cobra.Command {
	var (
		age       int
		completed []string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Answer one parent message",
		Example: `  nurturectl chat "my 10 month old is not crawling"
  nurturectl chat --age 18 "is it normal that she is not talking yet?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadCatalogs(cmd)
			if err != nil {
				return err
			}
			responder := chat.NewResponder(
				c.Milestones,
				evaluation.NewEngine(c.Milestones, c.Activities),
				c.Activities,
				activity.NewPicker(c.Records, nil),
			)

			req := chat.Request{Message: strings.Join(args, " "), Completed: completed}
			if cmd.Flags().Changed("age") {
				req.AgeMonths = &age
			}
			reply := responder.Respond(req)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, chathandler.FromReply(reply))
			}
			fmt.Fprintln(out, reply.Text)
			for _, a := range reply.Activities {
				fmt.Fprintf(out, "  - %s\n", a)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&age, "age", 0, "child age in months (overrides the message)")
	f.StringSliceVar(&completed, "completed", nil, "completed milestone IDs; runs a full evaluation")
	f.BoolVar(&asJSON, "json", false, "print the API response body")
	return cmd
}
