package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"sheetform/internal/contact"
	"sheetform/internal/sheets"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit one contact form",
	Long: `Submit one contact form to the configured submit_url.

Field values come from flags, or from prompts with --interactive. Values are
sent exactly as given. The command exits non-zero unless the endpoint accepted
the form.`,
	Example: `  sheetform submit --name Alice --email a@x.com --subject Hi --message Hello
  sheetform submit -i`,
	RunE: runSubmit,
}

func init() {
	for _, f := range contact.Fields {
		submitCmd.Flags().String(string(f), "", fmt.Sprintf("%s field value", f))
	}
	submitCmd.Flags().BoolP("interactive", "i", false, "prompt for every field")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireSubmitURL(); err != nil {
		return err
	}

	var state contact.FormState
	for _, f := range contact.Fields {
		value, _ := cmd.Flags().GetString(string(f))
		state, _ = state.With(f, value)
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		state, err = promptForm(state)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client := sheets.NewClient(nil, cfg.Endpoints())
	return submitOnce(ctx, cmd.OutOrStdout(), client, state)
}

// submitOnce loads state into a fresh Submitter, submits it and prints the
// status line.
func submitOnce(ctx context.Context, out io.Writer, sender contact.Sender, state contact.FormState) error {
	submitter := contact.NewSubmitter(sender)
	for _, f := range contact.Fields {
		if err := submitter.SetField(string(f), state.Get(f)); err != nil {
			return err
		}
	}

	outcome, err := submitter.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, submitter.Status())
	if outcome != contact.OutcomeSent {
		return fmt.Errorf("submit %s", outcome)
	}
	return nil
}

var errPromptAborted = errors.New("prompt aborted")

func promptForm(state contact.FormState) (contact.FormState, error) {
	questions := []struct {
		field  contact.Field
		prompt survey.Prompt
	}{
		{contact.FieldName, &survey.Input{Message: "Your Name:", Default: state.Name}},
		{contact.FieldEmail, &survey.Input{Message: "Your Email:", Default: state.Email}},
		{contact.FieldPhone, &survey.Input{Message: "Phone Number:", Default: state.Phone}},
		{contact.FieldSubject, &survey.Input{Message: "Your Subject:", Default: state.Subject}},
		{contact.FieldMessage, &survey.Multiline{Message: "Enter Your Message:", Default: state.Message}},
	}

	for _, q := range questions {
		var answer string
		if err := survey.AskOne(q.prompt, &answer); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return state, errPromptAborted
			}
			return state, fmt.Errorf("prompt %s: %w", q.field, err)
		}
		state, _ = state.With(q.field, answer)
	}
	return state, nil
}
